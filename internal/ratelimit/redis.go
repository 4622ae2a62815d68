package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a fixed-window limiter with counters shared through Redis.
// Each window gets its own key, incremented and re-expired in one
// pipeline round trip. Redis failures fail open: the request is allowed
// and a warning is logged, keeping the API available without Redis.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration

	now func() time.Time
}

// NewRedis creates a Redis-backed limiter allowing limit requests per
// window. The window must be positive.
func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts a request against key's current window.
func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	now := r.now()
	idx := windowIndex(now, r.window)
	reset := untilNextWindow(now, r.window)

	// keep the key for two windows so slow expiry never leaks counters
	windowKey := fmt.Sprintf("rate_limit:%s:%d", key, idx)
	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, 2*r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.S().Warnw("rate limit check failed, allowing request", "key", key, "error", err)
		return Result{Allowed: true, Remaining: r.limit, RetryAfter: reset, Limit: r.limit}, nil
	}

	count := int(incr.Val())
	if count > r.limit {
		return Result{Allowed: false, Remaining: 0, RetryAfter: reset, Limit: r.limit}, nil
	}
	return Result{Allowed: true, Remaining: r.limit - count, RetryAfter: reset, Limit: r.limit}, nil
}
