package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
)

// Recoverer turns a panic in a later handler into a 500 error response with
// the usual JSON body. http.ErrAbortHandler is re-raised so the server can
// drop the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				slog.String("stack", string(debug.Stack())))

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		}()

		next.ServeHTTP(w, r)
	})
}
