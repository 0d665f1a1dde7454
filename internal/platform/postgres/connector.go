package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
)

// Connector verifies the pool on first use and, when autoMigrate is set,
// applies pending migrations once. A failed attempt is retried on the next
// call.
type Connector struct {
	db          *sql.DB
	timeout     time.Duration
	autoMigrate bool
	logger      *slog.Logger

	mu    sync.Mutex
	ready bool
}

// NewConnector wraps db. No connection is made until Connect is called.
func NewConnector(db *sql.DB, timeout time.Duration, autoMigrate bool, log *slog.Logger) *Connector {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Connector{
		db:          db,
		timeout:     timeout,
		autoMigrate: autoMigrate,
		logger:      log.With(slog.String("component", "postgres_connector")),
	}
}

// Connect pings the database and runs migrations on the first success.
// It is safe for concurrent use.
func (c *Connector) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	if err := Ping(ctx, c.db, c.timeout); err != nil {
		return err
	}
	if c.autoMigrate {
		if err := Migrate(ctx, c.db, "up", log); err != nil {
			return err
		}
	}

	c.ready = true
	log.Info("connected to PostgreSQL")
	return nil
}

// Close closes the underlying pool.
func (c *Connector) Close(context.Context) error {
	return c.db.Close()
}
