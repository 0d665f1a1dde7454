package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
)

const testJWTSecret = "test-secret-that-is-at-least-32-characters-long"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		Database: config.DatabaseConfig{
			Driver:         config.DriverMemory,
			Name:           "property_listing_test",
			ConnectTimeout: time.Second,
		},
		Auth: config.AuthConfig{
			JWTSecret:     testJWTSecret,
			TokenLifetime: time.Hour,
			BcryptCost:    4,
		},
		Redis:      config.RedisConfig{TTL: time.Minute},
		Pagination: config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestServer runs the real router over the given backend.
func newTestServer(t *testing.T, cfg *config.Config, be *backend) *httptest.Server {
	t.Helper()
	app, err := newApplication(context.Background(), cfg, discardLogger(), be)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

type apiClient struct {
	t   *testing.T
	srv *httptest.Server
}

func (c apiClient) do(method, path, token string, body any) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
