package service

import "errors"

// Sentinel errors for the request lifecycle. Handlers map these onto HTTP
// statuses; everything else surfaces as a generic internal error.
var (
	// ErrInvalidForm marks malformed or missing input.
	ErrInvalidForm = errors.New("form data is invalid")

	// ErrNoRights marks a caller whose permission set does not contain any
	// acceptable token for the action.
	ErrNoRights = errors.New("no rights")

	// ErrForbidden marks an ownership mismatch: recognized token, wrong scope.
	ErrForbidden = errors.New("not allowed for records you do not own")

	// ErrNotFound marks an unresolvable request or file id.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState marks an illegal lifecycle transition.
	ErrInvalidState = errors.New("operation not allowed in current status")
)
