package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/postgres"
)

// handleMigrations runs a goose command against the configured PostgreSQL
// database. It's called from main() when the -migrate flag is set.
func handleMigrations(ctx context.Context, cfg *config.Config, log *slog.Logger, command string, args ...string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the %q driver, configured driver is %q",
			config.DriverPostgres, cfg.Database.Driver)
	}

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database connection", "error", closeErr)
		}
	}()

	if err := postgres.Ping(ctx, db, cfg.Database.ConnectTimeout); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	return postgres.Migrate(ctx, db, command, log, args...)
}
