package main

import (
	"fmt"
	"log/slog"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary records the effective settings without exposing secrets.
func logConfigSummary(cfg *config.Config, log *slog.Logger) {
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"lazy_connect", cfg.Server.LazyConnect,
		"cache_enabled", cfg.Redis.URL != "")

	if cfg.Database.URL != "" {
		log.Debug("Database configuration", "url_present", true, "name", cfg.Database.Name)
	}
	if cfg.Auth.JWTSecret != "" {
		log.Debug("Auth configuration",
			"jwt_secret_present", true,
			"token_lifetime", cfg.Auth.TokenLifetime.String())
	}
}
