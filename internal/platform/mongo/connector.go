package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/redact"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

const (
	accountsCollection = "users"
	listingsCollection = "properties"
)

// Connector owns the process-wide MongoDB client. The first successful
// Database call dials, pings, and ensures indexes; later calls reuse the
// cached handle. A failed attempt leaves nothing cached, so the next call
// retries.
type Connector struct {
	uri     string
	dbName  string
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewConnector creates a Connector for the given database settings. No
// connection is made until Database or Connect is called.
func NewConnector(cfg config.DatabaseConfig, log *slog.Logger) *Connector {
	if log == nil {
		log = slog.Default()
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Connector{
		uri:     cfg.URL,
		dbName:  cfg.Name,
		timeout: timeout,
		logger:  log.With(slog.String("component", "mongo_connector")),
	}
}

// Connect establishes the connection if needed. It is safe for concurrent use.
func (c *Connector) Connect(ctx context.Context) error {
	_, err := c.Database(ctx)
	return err
}

// Database returns the connected database handle, dialing on first use.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(c.uri))
	if err != nil {
		log.Error("mongo connect failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("%w: connect: %v", store.ErrUnavailable, err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error("mongo ping failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("%w: ping: %v", store.ErrUnavailable, err)
	}

	db := client.Database(c.dbName)
	if err := ensureIndexes(dialCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error("mongo index setup failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	c.client = client
	c.db = db
	log.Info("connected to MongoDB", slog.String("database", c.dbName))
	return db, nil
}

// Ping checks an established connection. It does not dial.
func (c *Connector) Ping(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	if client == nil {
		return errors.New("mongo: not connected")
	}
	return client.Ping(ctx, nil)
}

// Close disconnects the client if one was established.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	return err
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(accountsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("users.email: %w", err)
	}

	_, err = db.Collection(listingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isDeleted", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("active_newest"),
	})
	if err != nil {
		return fmt.Errorf("properties.isDeleted_createdAt: %w", err)
	}
	return nil
}
