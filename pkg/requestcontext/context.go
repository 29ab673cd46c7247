// Package requestcontext provides context accessors for batch-scoped values.
//
// The pipeline sets these once per ingestion batch; services read them so
// every entity touched by a batch carries the same batch id and clock reading.
//
// Usage in services (read values):
//
//	batchID := requestcontext.BatchID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "kinlead/pkg/domain"
)

type (
	batchIDKey     struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyBatchID     = batchIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// BatchID retrieves the ingestion batch ID from the context.
// Returns the zero value (nil UUID) if not set.
func BatchID(ctx context.Context) id.BatchID {
	if batchID, ok := ctx.Value(ContextKeyBatchID).(id.BatchID); ok {
		return batchID
	}
	return id.BatchID{}
}

// WithBatchID injects a batch ID into the context.
func WithBatchID(ctx context.Context, batchID id.BatchID) context.Context {
	return context.WithValue(ctx, ContextKeyBatchID, batchID)
}

// Now retrieves the batch-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Service unit tests with a fixed clock
//   - Batches that need one consistent timestamp
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
