package workflow

import "github.com/wibisana/marketing-tracker/internal/domain/entity"

// State represents a task's position in the review workflow
type State string

const (
	StateToDo       State = State(entity.StatusToDo)
	StateInProgress State = State(entity.StatusInProgress)
	StateNeedReview State = State(entity.StatusNeedReview)
	StateRevision   State = State(entity.StatusRevision)
	StateApproved   State = State(entity.StatusApproved)
	StateArchived   State = State(entity.StatusArchived)
)

var validStates = map[State]bool{
	StateToDo:       true,
	StateInProgress: true,
	StateNeedReview: true,
	StateRevision:   true,
	StateApproved:   true,
	StateArchived:   true,
}

// reviewStates are states whose outgoing transitions are review decisions
// rather than plain status edits
var reviewStates = map[State]bool{
	StateNeedReview: true,
}

// IsTerminal returns true for Archived, the only resting state. It is not a
// dead end: the reopen transition leads back to To Do, but nothing else does.
func (s State) IsTerminal() bool {
	return s == StateArchived
}

// RequiresReviewer returns true if leaving this state is a review decision
// gated on reviewer standing, not just status-edit rights.
func (s State) RequiresReviewer() bool {
	return reviewStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid workflow state
func (s State) IsValid() bool {
	return validStates[s]
}
