package services

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Service methods wrap these with %w so callers can
// classify failures with errors.Is and map them to HTTP statuses in one
// place. A request for a report that does not exist is ErrNotFound, never
// ErrForbidden, even when the caller surfaces both the same way.
var (
	// ErrValidation covers missing or malformed input.
	ErrValidation = errors.New("invalid input")
	// ErrForbidden covers authenticated actors whose role or ownership
	// does not permit the action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound covers references to absent records.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers violated preconditions, e.g. duplicate feedback
	// or feedback on an unaddressed report.
	ErrConflict = errors.New("conflict")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func forbiddenError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func notFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
