package middleware

import (
	"context"
	"net/http"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
)

// Connector establishes the persistence connection. Connect must be safe to
// call concurrently and must allow a retry after a failure.
type Connector interface {
	Connect(ctx context.Context) error
}

// EnsureConnected makes sure the backend is connected before the request is
// handled. A failed attempt answers 500 and the next request tries again.
func EnsureConnected(conn Connector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := conn.Connect(r.Context()); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Database connection failed", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
