// Package redis provides an optional read-through cache for single listing
// lookups backed by Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/redact"
)

const (
	listingPrefix   = "listing:"
	tombstoneSuffix = ":invalidated"
)

// ListingCache stores active listings by id. Cache failures are logged and
// reported as misses; they never fail the request that triggered them.
//
// Invalidate leaves a tombstone that lives as long as an entry would. While
// it exists Set is a no-op, so a read that loaded a listing before it was
// changed cannot put the stale copy back.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New parses url, connects, and pings the server.
func New(ctx context.Context, url string, ttl time.Duration, log *slog.Logger) (*ListingCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging redis: %w", err)
	}

	return NewWithClient(client, ttl, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration, log *slog.Logger) *ListingCache {
	if client == nil {
		panic("client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ListingCache{
		client: client,
		ttl:    ttl,
		logger: log.With(slog.String("component", "listing_cache")),
	}
}

func listingKey(id string) string {
	return listingPrefix + id
}

func tombstoneKey(id string) string {
	return listingPrefix + id + tombstoneSuffix
}

// Get returns the cached listing and true on a hit.
func (c *ListingCache) Get(ctx context.Context, id string) (*domain.Listing, bool) {
	raw, err := c.client.Get(ctx, listingKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.warn(ctx, "cache read failed", id, err)
		return nil, false
	}

	var l domain.Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		c.warn(ctx, "cache entry is corrupt", id, err)
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &l, true
}

var errInvalidated = errors.New("listing was invalidated")

// Set stores l under its id unless the id was invalidated within the last ttl.
func (c *ListingCache) Set(ctx context.Context, l *domain.Listing) {
	raw, err := json.Marshal(l)
	if err != nil {
		c.warn(ctx, "cache encode failed", l.ID, err)
		return
	}

	tomb := tombstoneKey(l.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, tomb).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return errInvalidated
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listingKey(l.ID), raw, c.ttl)
			return nil
		})
		return err
	}, tomb)

	switch {
	case err == nil:
	case errors.Is(err, errInvalidated), errors.Is(err, redis.TxFailedErr):
		logger.FromContextOrDefault(ctx, c.logger).Debug("cache write skipped after invalidation",
			slog.String("listing_id", l.ID))
	default:
		c.warn(ctx, "cache write failed", l.ID, err)
	}
}

// Invalidate drops the entry for id and writes its tombstone atomically.
func (c *ListingCache) Invalidate(ctx context.Context, id string) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tombstoneKey(id), 1, c.ttl)
		pipe.Del(ctx, listingKey(id))
		return nil
	})
	if err != nil {
		c.warn(ctx, "cache invalidate failed", id, err)
	}
}

// Close releases the client's connections.
func (c *ListingCache) Close() error {
	return c.client.Close()
}

func (c *ListingCache) warn(ctx context.Context, msg, id string, err error) {
	logger.FromContextOrDefault(ctx, c.logger).Warn(msg,
		slog.String("listing_id", id),
		slog.String("error", redact.Error(err)))
}
