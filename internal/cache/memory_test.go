package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetMissingKey(t *testing.T) {
	m := NewMemory(10)

	value, ok, err := m.Get(context.Background(), "users:1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestMemorySetAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)

	require.NoError(t, m.Set(ctx, "users:1", []byte(`{"id":1}`), time.Minute))

	value, ok, err := m.Get(ctx, "users:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"id":1}`), value)
}

func TestMemorySetCopiesValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)

	buf := []byte("original")
	require.NoError(t, m.Set(ctx, "k", buf, 0))
	buf[0] = 'X'

	value, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("original"), value)
}

func TestMemoryExpiresEntries(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)
	current := time.Now()
	m.now = func() time.Time { return current }

	require.NoError(t, m.Set(ctx, "users:1", []byte("ada"), time.Minute))

	current = current.Add(30 * time.Second)
	_, ok, err := m.Get(ctx, "users:1")
	require.NoError(t, err)
	assert.True(t, ok)

	current = current.Add(time.Minute)
	_, ok, err = m.Get(ctx, "users:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)
	current := time.Now()
	m.now = func() time.Time { return current }

	require.NoError(t, m.Set(ctx, "users:1", []byte("ada"), 0))

	current = current.Add(24 * time.Hour)
	_, ok, err := m.Get(ctx, "users:1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryEvictsOldestInserted(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, m.Set(ctx, "c", []byte("3"), 0))

	_, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "oldest entry should be evicted")

	_, ok, _ = m.Get(ctx, "b")
	assert.True(t, ok)
	_, ok, _ = m.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryOverwriteRefreshesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, m.Set(ctx, "a", []byte("1b"), 0))
	require.NoError(t, m.Set(ctx, "c", []byte("3"), 0))

	_, ok, _ := m.Get(ctx, "b")
	assert.False(t, ok, "b is now the oldest insert and should be evicted")

	value, ok, _ := m.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, []byte("1b"), value)
	_, ok, _ = m.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)

	require.NoError(t, m.Set(ctx, "users:1", []byte("ada"), 0))
	require.NoError(t, m.Delete(ctx, "users:1"))

	_, ok, err := m.Get(ctx, "users:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryDeletePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)

	require.NoError(t, m.Set(ctx, "users:list:1", []byte("a"), 0))
	require.NoError(t, m.Set(ctx, "users:get:1", []byte("b"), 0))
	require.NoError(t, m.Set(ctx, "companies:list:1", []byte("c"), 0))

	require.NoError(t, m.DeletePrefix(ctx, "users:"))

	_, ok, _ := m.Get(ctx, "users:list:1")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "users:get:1")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "companies:list:1")
	assert.True(t, ok)
}

func TestMemoryCloseDropsEntries(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)

	require.NoError(t, m.Set(ctx, "users:1", []byte("ada"), 0))
	require.NoError(t, m.Close())

	_, ok, err := m.Get(ctx, "users:1")
	require.NoError(t, err)
	assert.False(t, ok)
}
