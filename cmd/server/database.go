package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/middleware"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/memory"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/mongo"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/postgres"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// backend bundles the stores of one persistence driver with the hooks that
// connect, check, and release it.
type backend struct {
	driver    string
	accounts  store.AccountStore
	listings  store.ListingStore
	connector middleware.Connector
	ping      func(ctx context.Context) error
	close     func(ctx context.Context) error
}

// openBackend builds the stores for cfg.Database.Driver. No network traffic
// happens here; the connector dials when first asked to.
func openBackend(cfg *config.Config, log *slog.Logger) (*backend, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		conn := mongo.NewConnector(cfg.Database, log)
		return &backend{
			driver:    config.DriverMongo,
			accounts:  mongo.NewAccountStore(conn, log),
			listings:  mongo.NewListingStore(conn, log),
			connector: conn,
			ping:      conn.Ping,
			close:     conn.Close,
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		conn := postgres.NewConnector(db, cfg.Database.ConnectTimeout, cfg.Database.AutoMigrate, log)
		return &backend{
			driver:    config.DriverPostgres,
			accounts:  postgres.NewAccountStore(db, log),
			listings:  postgres.NewListingStore(db, log),
			connector: conn,
			ping: func(ctx context.Context) error {
				return postgres.Ping(ctx, db, cfg.Database.ConnectTimeout)
			},
			close: conn.Close,
		}, nil

	case config.DriverMemory:
		log.Warn("using in-memory persistence; data is lost on restart")
		return newMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func newMemoryBackend() *backend {
	return &backend{
		driver:    config.DriverMemory,
		accounts:  memory.NewAccountStore(),
		listings:  memory.NewListingStore(),
		connector: noopConnector{},
		ping:      func(context.Context) error { return nil },
		close:     func(context.Context) error { return nil },
	}
}

type noopConnector struct{}

func (noopConnector) Connect(context.Context) error { return nil }
