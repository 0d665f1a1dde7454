package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInvalidCredentials is returned by Login for an unknown email and for a
	// wrong password alike, so callers cannot probe which accounts exist.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotOwned indicates a resource is owned by a different account than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another account")

	// ErrUpdateNotOwned is ErrNotOwned raised by an update.
	ErrUpdateNotOwned = fmt.Errorf("%w: update", ErrNotOwned)

	// ErrDeleteNotOwned is ErrNotOwned raised by a delete.
	ErrDeleteNotOwned = fmt.Errorf("%w: delete", ErrNotOwned)
)

// Messages for requests that leave out required fields. Handlers reject a
// body missing any of them with the same text the services use.
const (
	MsgRegisterFieldsRequired = "Name, email, password, and role are required"
	MsgLoginFieldsRequired    = "Email and password are required"
	MsgListingFieldsRequired  = "Title, price, and location are required"
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
