package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a requested status change is not
	// in the transition table
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned when a state is not a valid workflow state
	ErrInvalidState = errors.New("invalid state")

	// ErrMissingFeedback is returned when a revision is requested without
	// feedback text
	ErrMissingFeedback = errors.New("revision requires feedback")
)
