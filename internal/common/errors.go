// Package common holds sentinel errors and small helpers shared by the
// server and the client. Callers match errors with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrInvalidToken covers every reason a bearer token is refused.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports a rejected input field. Message is meant to be
// shown to the caller as is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrorValidation) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}
