package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the memory engine when no limit is configured.
const DefaultMaxEntries = 1000

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
	seq       uint64
}

// Memory is a mutex-guarded in-process cache. Entries expire lazily on
// read, and when the store is full the oldest-inserted entry is evicted
// to make room.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	seq        uint64

	now func() time.Time
}

// NewMemory creates a memory cache holding at most maxEntries values.
// Non-positive limits fall back to DefaultMaxEntries.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the value stored under key, if present and not expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a copy of value under key. Overwriting a key counts as a
// fresh insert for eviction ordering.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.maxEntries {
		m.evictOldest()
	}

	e := memoryEntry{value: append([]byte(nil), value...), seq: m.seq}
	m.seq++
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Delete removes key from the store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

// Close drops all entries.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
	return nil
}

// evictOldest removes the entry with the lowest insertion sequence.
// Callers must hold the lock.
func (m *Memory) evictOldest() {
	var (
		oldestKey string
		oldestSeq uint64
		found     bool
	)
	for key, e := range m.entries {
		if !found || e.seq < oldestSeq {
			oldestKey, oldestSeq, found = key, e.seq, true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}
