package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/redis"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/redact"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger  *slog.Logger
	backend *backend
	cache   *redis.ListingCache

	// Service interfaces
	jwtService     auth.JWTService
	accountService service.AccountService
	listingService service.ListingService
}

// newApplication creates a new application instance with all dependencies initialized.
// Unless lazy connection is configured, the backend is connected here and a
// failure is fatal.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, be *backend) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		backend: be,
	}

	if !cfg.Server.LazyConnect {
		if err := be.connector.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", be.driver, err)
		}
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime", cfg.Auth.TokenLifetime.String())

	app.accountService, err = service.NewAccountService(
		be.accounts,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		app.jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	// The cache is optional; an unreachable Redis only costs read-through.
	var cache service.ListingCache
	if cfg.Redis.URL != "" {
		app.cache, err = redis.New(ctx, cfg.Redis.URL, cfg.Redis.TTL, logger)
		if err != nil {
			logger.Warn("listing cache disabled", "error", redact.Error(err))
		} else {
			cache = app.cache
			logger.Info("listing cache enabled", "ttl", cfg.Redis.TTL.String())
		}
	}

	app.listingService, err = service.NewListingService(be.listings, be.accounts, cache, cfg.Pagination, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing service: %w", err)
	}

	logger.Info("Application initialized successfully", "driver", be.driver)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing cache connection", "error", redact.Error(err))
		}
	}

	if app.backend != nil {
		if err := app.backend.close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", redact.Error(err))
		}
	}

	app.logger.Info("Application shutdown completed")
}
