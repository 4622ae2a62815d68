package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute, time.Minute)

	cb.RecordFailure()
	cb.RecordFailure()
	assert.False(t, cb.IsOpen())

	cb.RecordFailure()
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreakerSuccessResets(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute, time.Minute)

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.False(t, cb.IsOpen())

	cb.RecordFailure()
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreakerDropsStaleFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, 100*time.Millisecond, time.Minute)

	cb.RecordFailure()
	time.Sleep(250 * time.Millisecond)
	cb.RecordFailure()

	assert.False(t, cb.IsOpen(), "first failure aged out of the window")
}

func TestCircuitBreakerClosesAfterOpenDuration(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute, 50*time.Millisecond)

	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	time.Sleep(100 * time.Millisecond)
	assert.False(t, cb.IsOpen())
}

func TestCircuitBreakerNilIsNoop(t *testing.T) {
	var cb *CircuitBreaker

	cb.RecordFailure()
	cb.RecordSuccess()
	assert.False(t, cb.IsOpen())
}
