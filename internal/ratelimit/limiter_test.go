package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	crm "github.com/smdydx/bidua-crm"
)

func TestWindowIndex(t *testing.T) {
	assert.Equal(t, int64(1), windowIndex(time.Unix(119, 0), time.Minute))
	assert.Equal(t, int64(2), windowIndex(time.Unix(120, 0), time.Minute))
	assert.Equal(t, int64(2), windowIndex(time.Unix(179, 0), time.Minute))
}

func TestUntilNextWindow(t *testing.T) {
	assert.Equal(t, 30*time.Second, untilNextWindow(time.Unix(90, 0), time.Minute))
	assert.Equal(t, time.Minute, untilNextWindow(time.Unix(120, 0), time.Minute))
}

func TestNewWithoutRedisURLUsesMemory(t *testing.T) {
	l := New(crm.RateLimitConfig{Requests: 5, Window: time.Minute}, "")

	assert.IsType(t, &Memory{}, l)
}

func TestNewWithInvalidRedisURLFallsBack(t *testing.T) {
	l := New(crm.RateLimitConfig{Requests: 5, Window: time.Minute}, "http://localhost:6379")

	assert.IsType(t, &Memory{}, l)
}
