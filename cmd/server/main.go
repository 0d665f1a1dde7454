// Package main implements the entry point for the property listing API
// server, which lets agents publish property listings and admins moderate
// them.
//
// @title Property Listing API
// @version 1.0
// @description Agents publish property listings; admins moderate them.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a database migration command (up, down, status, version, redo, reset) and exit. Requires the postgres driver.")
	flag.Parse()

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, log, err := initializeApp()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" {
		if err := handleMigrations(ctx, cfg, log, *migrateCmd, flag.Args()...); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, nil, err
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

// run wires the application and serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	be, err := openBackend(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open persistence backend: %w", err)
	}

	app, err := newApplication(ctx, cfg, log, be)
	if err != nil {
		if closeErr := be.close(context.Background()); closeErr != nil {
			log.Error("failed to close backend", "error", closeErr)
		}
		return err
	}

	return app.Run(ctx)
}
