package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by every exposed operation. Callers classify with
// errors.Is; layers wrap with fmt.Errorf("...: %w", err).
var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced board, column, task or user that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a request that would break a hard reference.
	ErrConflict = errors.New("conflict")

	// ErrStorage marks a failure of the underlying store.
	ErrStorage = errors.New("storage failure")
)

// Validationf returns an ErrValidation-wrapped error with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflictf returns an ErrConflict-wrapped error with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Classify leaves validation, not-found, conflict and storage errors as they
// are and marks anything else as a storage failure. nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// Kind names the error kind of err for logs and wire envelopes.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "storage"
	}
}
