package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryCounter struct {
	count       int
	windowIndex int64
}

// Memory is a mutex-guarded fixed-window limiter. Counters reset when
// their window rolls over, and stale counters are pruned once per
// rollover so idle keys do not accumulate.
type Memory struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string]*memoryCounter
	pruned int64

	now func() time.Time
}

// NewMemory creates an in-memory limiter allowing limit requests per
// window. The window must be positive.
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:  limit,
		window: window,
		seen:   make(map[string]*memoryCounter),
		now:    time.Now,
	}
}

// Allow counts a request against key's current window.
func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	idx := windowIndex(now, m.window)

	if idx != m.pruned {
		for k, c := range m.seen {
			if c.windowIndex < idx {
				delete(m.seen, k)
			}
		}
		m.pruned = idx
	}

	c, ok := m.seen[key]
	if !ok || c.windowIndex < idx {
		c = &memoryCounter{windowIndex: idx}
		m.seen[key] = c
	}

	reset := untilNextWindow(now, m.window)
	if c.count >= m.limit {
		return Result{Allowed: false, Remaining: 0, RetryAfter: reset, Limit: m.limit}, nil
	}
	c.count++
	return Result{Allowed: true, Remaining: m.limit - c.count, RetryAfter: reset, Limit: m.limit}, nil
}
