package errors

import (
	"errors"
	"fmt"
)

// The three error kinds surfaced by the records core. Handlers map them to
// distinct HTTP statuses, so they must never be conflated.

var (
	// ErrNotFound indicates a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrDataAccess indicates a backend or network failure while reading or
	// writing records
	ErrDataAccess = errors.New("data access failure")

	// ErrAuthentication indicates a credential or account operation failed
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// DataAccessError wraps a backend failure with context
func DataAccessError(operation string, err error) error {
	return fmt.Errorf("%s: %v: %w", operation, err, ErrDataAccess)
}

// AuthenticationError creates an authentication error with a backend-defined reason
func AuthenticationError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrAuthentication)
	}
	return ErrAuthentication
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
