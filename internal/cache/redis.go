package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Breaker defaults: five failures inside thirty seconds open the
// breaker for fifteen seconds.
const (
	breakerThreshold    = 5
	breakerWindow       = 30 * time.Second
	breakerOpenDuration = 15 * time.Second
)

// Redis caches values in a Redis server. All calls are guarded by a
// circuit breaker: while it is open, reads report a miss and writes
// are dropped rather than waiting out another timeout.
type Redis struct {
	client  *redis.Client
	breaker *CircuitBreaker
}

// NewRedis wraps an established client with the default breaker.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client:  client,
		breaker: NewCircuitBreaker(breakerThreshold, breakerWindow, breakerOpenDuration),
	}
}

// Get returns the value stored under key. A missing key and an open
// breaker both read as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r.breaker.IsOpen() {
		return nil, false, nil
	}
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.breaker.RecordSuccess()
		return nil, false, nil
	}
	if err != nil {
		r.breaker.RecordFailure()
		return nil, false, err
	}
	r.breaker.RecordSuccess()
	return value, true, nil
}

// Set stores value under key with ttl. Dropped while the breaker is open.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.breaker.IsOpen() {
		return nil
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.breaker.RecordFailure()
		return err
	}
	r.breaker.RecordSuccess()
	return nil
}

// Delete removes a single key. Dropped while the breaker is open.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.breaker.IsOpen() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.breaker.RecordFailure()
		return err
	}
	r.breaker.RecordSuccess()
	return nil
}

// DeletePrefix removes every key starting with prefix. Dropped while
// the breaker is open.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	if r.breaker.IsOpen() {
		return nil
	}
	keys, err := r.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		r.breaker.RecordFailure()
		return err
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			r.breaker.RecordFailure()
			return err
		}
	}
	r.breaker.RecordSuccess()
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
