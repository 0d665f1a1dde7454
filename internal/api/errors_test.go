package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service/auth"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"validation error", domain.NewValidationError("title", "Title, price, and location are required"), http.StatusBadRequest},
		{"invalid status", &domain.ValidationError{Field: "status", Message: "bad", Err: domain.ErrInvalidStatus}, http.StatusBadRequest},
		{"email exists", store.ErrEmailExists, http.StatusBadRequest},
		{"generic duplicate", fmt.Errorf("create: %w", store.ErrDuplicate), http.StatusBadRequest},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"invalid entity", fmt.Errorf("save: %w", store.ErrInvalidEntity), http.StatusBadRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped invalid token", fmt.Errorf("authenticate: %w", auth.ErrInvalidToken), http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"update not owned", service.ErrUpdateNotOwned, http.StatusForbidden},
		{"delete not owned", service.ErrDeleteNotOwned, http.StatusForbidden},
		{"listing not found", store.ErrListingNotFound, http.StatusNotFound},
		{"account not found", store.ErrAccountNotFound, http.StatusNotFound},
		{"service error around not found", service.NewServiceError("get", "load", store.ErrListingNotFound), http.StatusNotFound},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "Internal server error"},
		{"validation message passes through", domain.NewValidationError("", "Email and password are required"), "Email and password are required"},
		{"wrapped validation message", fmt.Errorf("create: %w", domain.NewValidationError("title", "title is required")), "title is required"},
		{"email exists", store.ErrEmailExists, "Email already registered"},
		{"generic duplicate", store.ErrDuplicate, "Resource already exists"},
		{"generic not found", fmt.Errorf("get: %w", store.ErrNotFound), "Resource not found"},
		{"invalid credentials", service.ErrInvalidCredentials, "Invalid email or password"},
		{"update not owned", service.ErrUpdateNotOwned, "You can only update your own properties"},
		{"delete not owned", service.ErrDeleteNotOwned, "You can only delete your own properties"},
		{"listing not found", store.ErrListingNotFound, "Property not found"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"internal details hidden", errors.New("dial tcp mongodb://root:pw@db:27017: refused"), "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIErrorWritesEnvelope(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/properties/x", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, service.NewServiceError("get_listing", "failed to load listing",
		errors.New("postgres://app:secret@db/listings unreachable")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.Equal(t, shared.GetTraceID(req.Context()), body.TraceID)
	assert.NotContains(t, rec.Body.String(), "secret")
}
