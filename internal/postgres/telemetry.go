package postgres

import (
	"context"
	"sync"
	"time"
)

// Lightweight telemetry hook for repository operations. Service wiring may
// register a real emitter (slow-query logging, metrics); the default is a
// no-op so the package carries no observability dependency.

// QueryTelemetry receives one event per completed repository operation.
type QueryTelemetry func(ctx context.Context, op, entity string, elapsed time.Duration, rows int)

var (
	teleMu   sync.Mutex
	teleImpl QueryTelemetry = func(ctx context.Context, op, entity string, elapsed time.Duration, rows int) {
		// noop by default
	}
)

// RegisterQueryTelemetry registers the process-wide telemetry hook. Passing
// nil restores the no-op default.
func RegisterQueryTelemetry(fn QueryTelemetry) {
	teleMu.Lock()
	defer teleMu.Unlock()
	if fn == nil {
		teleImpl = func(ctx context.Context, op, entity string, elapsed time.Duration, rows int) {}
		return
	}
	teleImpl = fn
}

func emitQuery(ctx context.Context, op, entity string, elapsed time.Duration, rows int) {
	teleMu.Lock()
	fn := teleImpl
	teleMu.Unlock()
	fn(ctx, op, entity, elapsed, rows)
}
