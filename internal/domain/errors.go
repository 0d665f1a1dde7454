package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// It is usually wrapped by a ValidationError carrying a client-safe message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRole is returned when a role is neither agent nor admin.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidStatus is returned when a listing status is not a known value.
	ErrInvalidStatus = errors.New("invalid listing status")
)

// ValidationError describes why input was rejected. Message is safe to
// return to clients verbatim.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap lets errors.Is match both ErrValidation and the specific cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}
