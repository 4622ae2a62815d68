// Package ratelimit provides fixed-window request throttling. A Redis
// engine shares the window counters across replicas; the in-memory
// engine covers single-node deployments and Redis outages.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	crm "github.com/smdydx/bidua-crm"
)

// pingTimeout bounds the startup connectivity probe.
const pingTimeout = 5 * time.Second

// Result reports the outcome of a single rate limit check. RetryAfter
// is the time left until the current window rolls over, set on allowed
// and denied results alike.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	Limit      int
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// New builds a limiter from configuration. When a Redis URL is set and
// the server answers a ping the Redis engine is used; any failure is
// logged and the in-memory engine takes over.
func New(cfg crm.RateLimitConfig, redisURL string) Limiter {
	if redisURL == "" {
		return NewMemory(cfg.Requests, cfg.Window)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.S().Warnw("invalid redis url, using in-memory rate limiting", "error", err)
		return NewMemory(cfg.Requests, cfg.Window)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.S().Warnw("redis unreachable, using in-memory rate limiting", "error", err)
		_ = client.Close()
		return NewMemory(cfg.Requests, cfg.Window)
	}

	zap.S().Infow("rate limiter connected", "engine", "redis")
	return NewRedis(client, cfg.Requests, cfg.Window)
}

// windowIndex numbers the fixed windows since the epoch so every
// replica lands on the same counter for the same instant.
func windowIndex(now time.Time, window time.Duration) int64 {
	return now.UnixNano() / int64(window)
}

// untilNextWindow returns the time left before the window rolls over.
func untilNextWindow(now time.Time, window time.Duration) time.Duration {
	next := (windowIndex(now, window) + 1) * int64(window)
	return time.Duration(next - now.UnixNano())
}
