package assignment

import "errors"

var (
	// ErrAlreadyAssigned is returned when adding a user already in the PIC list
	ErrAlreadyAssigned = errors.New("user already assigned")

	// ErrNotAssigned is returned when removing a user absent from the PIC list
	ErrNotAssigned = errors.New("user not assigned")

	// ErrLastPicRemoval is returned when a removal would leave the task with
	// no PIC at all
	ErrLastPicRemoval = errors.New("cannot remove the last PIC")
)
