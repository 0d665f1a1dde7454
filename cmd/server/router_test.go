package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/middleware"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	c := apiClient{t, newTestServer(t, testConfig(), newMemoryBackend())}

	resp := c.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceHeader))

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, map[string]string{"status": "OK"}, body)
}

func TestReadyEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("reachable backend", func(t *testing.T) {
		t.Parallel()
		c := apiClient{t, newTestServer(t, testConfig(), newMemoryBackend())}

		resp := c.do(http.MethodGet, "/ready", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "OK", body["status"])
	})

	t.Run("unreachable backend", func(t *testing.T) {
		t.Parallel()
		be := newMemoryBackend()
		be.ping = func(context.Context) error { return errors.New("connection refused") }
		c := apiClient{t, newTestServer(t, testConfig(), be)}

		resp := c.do(http.MethodGet, "/ready", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var body shared.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Service unavailable", body.Error)
		assert.Equal(t, http.StatusServiceUnavailable, body.Status)
	})
}

// panickingListings blows up on every list call.
type panickingListings struct {
	store.ListingStore
}

func (panickingListings) List(context.Context, store.ListingQuery) (*store.ListingPage, error) {
	panic("listing index corrupted")
}

func TestHandlerPanicReturnsErrorEnvelope(t *testing.T) {
	t.Parallel()
	be := newMemoryBackend()
	be.listings = panickingListings{be.listings}
	c := apiClient{t, newTestServer(t, testConfig(), be)}

	resp := c.do(http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body shared.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Internal server error", body.Error)
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.Equal(t, resp.Header.Get(middleware.TraceHeader), body.TraceID)

	resp = c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoutesReturnNotFound(t *testing.T) {
	t.Parallel()
	c := apiClient{t, newTestServer(t, testConfig(), newMemoryBackend())}

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nothing-here"},
		{http.MethodGet, "/totally/unknown"},
		{http.MethodPatch, "/api/properties/123"},
		{http.MethodGet, "/api/auth/login"},
	}
	for _, tc := range tests {
		resp := c.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)

		var body shared.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Route not found", body.Error)
		assert.Equal(t, http.StatusNotFound, body.Status)
	}
}

func TestDocumentationRoutes(t *testing.T) {
	t.Parallel()
	c := apiClient{t, newTestServer(t, testConfig(), newMemoryBackend())}

	resp := c.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, docsIndexPath, resp.Header.Get("Location"))

	resp = c.do(http.MethodGet, "/swagger.json", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var doc struct {
		Swagger string                     `json:"swagger"`
		Info    map[string]any             `json:"info"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Property Listing API", doc.Info["title"])
	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/properties", "/api/properties/{id}", "/api/properties/admin/{id}"} {
		assert.Contains(t, doc.Paths, path)
	}

	resp = c.do(http.MethodGet, docsIndexPath, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, testConfig(), newMemoryBackend())

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/properties", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}
