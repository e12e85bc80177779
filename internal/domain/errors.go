package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataAccess marks a failure talking to the data store (network, permission, query).
	ErrDataAccess = errors.New("data store unavailable")
	// ErrProfileNotFound is returned when a user has no profile row yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrQuestionNotFound indicates a submitted question ID is not part of the question set.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrValidation indicates a record or selection failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated is returned when no valid session accompanies a request.
	ErrUnauthenticated = errors.New("not authenticated")
)

// DataAccess wraps a store failure so callers can match both ErrDataAccess and the cause.
func DataAccess(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDataAccess, err)
}

// Invalid wraps a validation problem with ErrValidation.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
