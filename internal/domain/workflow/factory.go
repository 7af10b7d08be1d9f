package workflow

// BuildTaskStateMachine creates a state machine configured with the task
// review workflow. Exactly seven edges exist; Archived is left only through
// the explicit reopen.
func BuildTaskStateMachine(initialState State) StateMachine {
	builder := NewBuilder()

	builder.Configure(StateToDo).
		Permit(TriggerStart, StateInProgress)

	builder.Configure(StateInProgress).
		Permit(TriggerSubmitReview, StateNeedReview)

	// Leaving Need Review is a review decision, reviewer-gated
	builder.Configure(StateNeedReview).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerRequestRevision, StateRevision)

	builder.Configure(StateRevision).
		Permit(TriggerResume, StateInProgress)

	builder.Configure(StateApproved).
		Permit(TriggerArchive, StateArchived)

	builder.Configure(StateArchived).
		Permit(TriggerReopen, StateToDo)

	return builder.Build(initialState)
}

// TriggerFor resolves the trigger that moves the workflow from one state to
// another. Returns false when no configured edge connects the two.
func TriggerFor(from, to State) (Trigger, bool) {
	machine := BuildTaskStateMachine(from)
	for _, trigger := range machine.PermittedTriggers() {
		if target, ok := machine.TargetFor(trigger); ok && target == to {
			return trigger, true
		}
	}
	return "", false
}
