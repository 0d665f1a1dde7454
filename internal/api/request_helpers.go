package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// actorIDFromContext returns the id of the authenticated account.
// The auth middleware guarantees it on protected routes.
func actorIDFromContext(r *http.Request) (string, bool) {
	claims, ok := shared.ClaimsFromContext(r.Context())
	if !ok || claims.AccountID == "" {
		return "", false
	}
	return claims.AccountID, true
}

// pathID extracts the listing id from the URL path. Malformed ids are left
// to the store, which reports them as not found.
func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeRequest reads a JSON body into req and checks its required fields.
// It writes the error response itself and reports whether the handler may
// continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any, missingFields string) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, &domain.ValidationError{Message: missingFields, Err: err})
		return false
	}
	return true
}

// parseListingQuery builds a listing query from the URL query string.
// Absent parameters mean "no constraint"; zero page and limit are filled in
// by the service.
func parseListingQuery(values url.Values) (store.ListingQuery, error) {
	var q store.ListingQuery
	var err error

	if q.Page, err = positiveInt(values, "page"); err != nil {
		return store.ListingQuery{}, err
	}
	if q.Limit, err = positiveInt(values, "limit"); err != nil {
		return store.ListingQuery{}, err
	}
	if q.Filter.MinPrice, err = optionalNumber(values, "minPrice"); err != nil {
		return store.ListingQuery{}, err
	}
	if q.Filter.MaxPrice, err = optionalNumber(values, "maxPrice"); err != nil {
		return store.ListingQuery{}, err
	}

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		status, err := domain.ParseListingStatus(raw)
		if err != nil {
			return store.ListingQuery{}, err
		}
		q.Filter.Status = status
	}

	q.Filter.Search = strings.TrimSpace(values.Get("search"))
	return q, nil
}

func positiveInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.NewValidationError(key, key+" must be a positive integer")
	}
	return n, nil
}

func optionalNumber(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.NewValidationError(key, key+" must be a number")
	}
	return &f, nil
}
