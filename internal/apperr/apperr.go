package apperr

import "errors"

// Sentinel errors for the service layer. Services wrap these with
// fmt.Errorf("...: %w", ...), controllers match with errors.Is and map
// them to HTTP status codes.
var (
	// ErrValidation marks missing or malformed required input. Rejected
	// before any persistence.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a referenced entity that does not exist or is not
	// owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an action against a session already in a terminal
	// state, distinct from ErrNotFound.
	ErrConflict = errors.New("conflict")

	// ErrDependency marks an upstream failure with no fallback available.
	ErrDependency = errors.New("upstream dependency failed")
)
