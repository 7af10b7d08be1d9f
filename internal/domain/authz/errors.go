package authz

import "errors"

var (
	// ErrForbidden is returned when the actor fails the permission check for
	// the attempted action
	ErrForbidden = errors.New("forbidden")

	// ErrUnknownActivity is returned when an operation requires an activity
	// that cannot be resolved. Predicates themselves never return it: they
	// fail closed and answer false instead.
	ErrUnknownActivity = errors.New("unknown activity")
)
