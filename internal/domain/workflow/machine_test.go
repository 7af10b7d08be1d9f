package workflow

import (
	"errors"
	"testing"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateToDo, false},
		{StateInProgress, false},
		{StateNeedReview, false},
		{StateRevision, false},
		{StateApproved, false},
		{StateArchived, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"valid state", StateToDo, true},
		{"valid state", StateArchived, true},
		{"invalid state", State("INVALID"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_RequiresReviewer(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateToDo, false},
		{StateInProgress, false},
		{StateNeedReview, true},
		{StateRevision, false},
		{StateApproved, false},
		{StateArchived, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.RequiresReviewer(); got != tt.expected {
				t.Errorf("State.RequiresReviewer() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	state := StateToDo
	if got := state.String(); got != "To Do" {
		t.Errorf("State.String() = %v, want %v", got, "To Do")
	}
}

func TestTrigger_String(t *testing.T) {
	trigger := TriggerSubmitReview
	if got := trigger.String(); got != "SUBMIT_REVIEW" {
		t.Errorf("Trigger.String() = %v, want %v", got, "SUBMIT_REVIEW")
	}
}

func TestBuilder_Configure(t *testing.T) {
	builder := NewBuilder()

	// Configure valid state
	config := builder.Configure(StateToDo)
	if config == nil {
		t.Fatal("Configure() returned nil")
	}

	// Configure same state again should return same config
	config2 := builder.Configure(StateToDo)
	if config != config2 {
		t.Error("Configure() should return same config for same state")
	}
}

func TestBuilder_ConfigurePanicsOnInvalidState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on invalid state")
		}
	}()

	builder.Configure(State("INVALID"))
}

func TestBuilder_BuildPanicsOnInvalidInitialState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Build() should panic on invalid initial state")
		}
	}()

	builder.Build(State("INVALID"))
}

func TestStateConfiguration_Permit(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateToDo).
		Permit(TriggerStart, StateInProgress)

	machine := builder.Build(StateToDo)

	if !machine.CanFire(TriggerStart) {
		t.Error("CanFire() should return true for permitted trigger")
	}

	if err := machine.Fire(TriggerStart); err != nil {
		t.Errorf("Fire() failed: %v", err)
	}

	if machine.State() != StateInProgress {
		t.Errorf("State after Fire() = %v, want %v", machine.State(), StateInProgress)
	}
}

func TestStateConfiguration_PermitPanicsOnInvalidState(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Permit() should panic on invalid target state")
		}
	}()

	builder.Configure(StateToDo).Permit(TriggerStart, State("INVALID"))
}

func TestStateMachine_CanFire(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateToDo).
		Permit(TriggerStart, StateInProgress)

	machine := builder.Build(StateToDo)

	tests := []struct {
		trigger  Trigger
		expected bool
	}{
		{TriggerStart, true},
		{TriggerApprove, false},
		{TriggerArchive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.trigger), func(t *testing.T) {
			if got := machine.CanFire(tt.trigger); got != tt.expected {
				t.Errorf("CanFire() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStateMachine_TargetFor(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateNeedReview).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerRequestRevision, StateRevision)

	machine := builder.Build(StateNeedReview)

	target, ok := machine.TargetFor(TriggerApprove)
	if !ok || target != StateApproved {
		t.Errorf("TargetFor(TriggerApprove) = %v, %v, want %v, true", target, ok, StateApproved)
	}

	if _, ok := machine.TargetFor(TriggerStart); ok {
		t.Error("TargetFor() should return false for unconfigured trigger")
	}
}

func TestStateMachine_Fire_InvalidTransition(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateToDo).
		Permit(TriggerStart, StateInProgress)

	machine := builder.Build(StateToDo)

	err := machine.Fire(TriggerApprove)
	if err == nil {
		t.Fatal("Fire() should fail for invalid transition")
	}

	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want %v", err, ErrInvalidTransition)
	}

	if machine.State() != StateToDo {
		t.Errorf("State should remain %v after failed Fire(), got %v", StateToDo, machine.State())
	}
}

func TestStateMachine_Fire_NoConfiguration(t *testing.T) {
	builder := NewBuilder()
	// Build without configuring StateToDo
	machine := builder.Build(StateToDo)

	err := machine.Fire(TriggerStart)
	if err == nil {
		t.Fatal("Fire() should fail when no configuration exists")
	}

	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want %v", err, ErrInvalidTransition)
	}
}

func TestStateMachine_PermittedTriggers(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateNeedReview).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerRequestRevision, StateRevision)

	machine := builder.Build(StateNeedReview)

	triggers := machine.PermittedTriggers()
	if len(triggers) != 2 {
		t.Errorf("PermittedTriggers() returned %d triggers, want 2", len(triggers))
	}

	// Check that both triggers are present (order doesn't matter)
	hasApprove := false
	hasRevision := false
	for _, trigger := range triggers {
		if trigger == TriggerApprove {
			hasApprove = true
		}
		if trigger == TriggerRequestRevision {
			hasRevision = true
		}
	}

	if !hasApprove || !hasRevision {
		t.Errorf("PermittedTriggers() = %v, want both TriggerApprove and TriggerRequestRevision", triggers)
	}
}

func TestStateMachine_PermittedTriggers_NoConfiguration(t *testing.T) {
	builder := NewBuilder()
	machine := builder.Build(StateToDo)

	triggers := machine.PermittedTriggers()
	if len(triggers) != 0 {
		t.Errorf("PermittedTriggers() returned %d triggers, want 0", len(triggers))
	}
}

func TestStateMachine_Immutability(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateToDo).
		Permit(TriggerStart, StateInProgress)

	// Build two machines from same builder
	machine1 := builder.Build(StateToDo)
	machine2 := builder.Build(StateToDo)

	// Fire trigger on machine1
	if err := machine1.Fire(TriggerStart); err != nil {
		t.Errorf("Fire() failed: %v", err)
	}

	// machine2 should remain in initial state
	if machine2.State() != StateToDo {
		t.Errorf("machine2 state = %v, want %v (machines should be independent)", machine2.State(), StateToDo)
	}

	// machine1 should be in new state
	if machine1.State() != StateInProgress {
		t.Errorf("machine1 state = %v, want %v", machine1.State(), StateInProgress)
	}
}
