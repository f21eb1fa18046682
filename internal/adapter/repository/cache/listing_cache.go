package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// callTimeout bounds each cache operation so a stalled Redis degrades the
// request to the durable store instead of blocking it.
const callTimeout = 2 * time.Second

// ListingCache is a Redis-backed key/value store for listing pages. It
// fails open: transport failures are logged and reported as misses, and
// a disabled cache behaves as a permanent miss, so callers never branch
// on cache availability.
type ListingCache struct {
	client  *redis.Client
	enabled bool
	logger  *logger.Logger
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("Failed to connect to Redis", zap.String("address", addr), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	log.Info("Successfully connected to Redis", zap.String("address", addr))
	return rdb, nil
}

// NewListingCache wraps a Redis client. When enabled is false (or client
// is nil) every Get reports not-found and every Set is a no-op.
func NewListingCache(client *redis.Client, enabled bool, log *logger.Logger) *ListingCache {
	if client == nil {
		enabled = false
	}
	return &ListingCache{
		client:  client,
		enabled: enabled,
		logger:  log.Named("ListingCache"),
	}
}

// Enabled reports whether the cache participates in reads at all.
func (c *ListingCache) Enabled() bool {
	return c.enabled
}

// Get returns the cached payload and whether it was found. Transport
// failures are reported as misses.
func (c *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis Get failed, treating as miss", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores the payload under key for ttl. Failures are logged and
// reported as false; the entry simply will not be there next time.
func (c *ListingCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) bool {
	if !c.enabled {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.Warn("Redis Set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	c.logger.Debug("Cached listing page", zap.String("key", key), zap.Duration("ttl", ttl))
	return true
}
