package api

import (
	"errors"
	"net/http"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service/auth"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// A taken email is reported as a bad request, not a conflict
	case store.IsDuplicateError(err):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Internal server error"
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Message != "" {
		return validationErr.Message
	}

	switch {
	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case store.IsDuplicateError(err):
		return "Resource already exists"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, service.ErrUpdateNotOwned):
		return "You can only update your own properties"
	case errors.Is(err, service.ErrDeleteNotOwned):
		return "You can only delete your own properties"

	case errors.Is(err, store.ErrListingNotFound):
		return "Property not found"
	case errors.Is(err, store.ErrAccountNotFound):
		return "User not found"
	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken):
		return "Missing or invalid authorization header"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "Internal server error"
	}
}

// HandleAPIError is the single place a failed operation becomes an error
// response. Client errors are logged at debug, server errors at error with
// the redacted cause.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
