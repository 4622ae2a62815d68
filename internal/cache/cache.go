// Package cache provides byte-oriented caching for read-heavy API
// responses. A Redis engine is used when one is reachable, with an
// in-memory engine as the fallback so the backend never hard-depends
// on Redis being up.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	crm "github.com/smdydx/bidua-crm"
)

// pingTimeout bounds the startup connectivity probe.
const pingTimeout = 5 * time.Second

// Cache is the interface shared by the Redis and memory engines.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. A non-positive ttl stores
	// the value without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a single key.
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// Close releases engine resources.
	Close() error
}

// New builds a cache from configuration. When a Redis URL is set and
// the server answers a ping the Redis engine is used; any failure is
// logged and the memory engine takes over.
func New(cfg crm.CacheConfig) Cache {
	if cfg.RedisURL == "" {
		return NewMemory(cfg.MaxEntries)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.S().Warnw("invalid redis url, falling back to memory cache", "error", err)
		return NewMemory(cfg.MaxEntries)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.S().Warnw("redis unreachable, falling back to memory cache", "error", err)
		_ = client.Close()
		return NewMemory(cfg.MaxEntries)
	}

	zap.S().Infow("cache connected", "engine", "redis")
	return NewRedis(client)
}
