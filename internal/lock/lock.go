// Package lock serializes writers of a person-pool partition. Only one batch
// may resolve records against a partition at a time, so two batches can never
// both decide to create the same person.
package lock

import (
	"context"
	"errors"
	"time"

	dErrors "kinlead/pkg/domain-errors"
	"kinlead/pkg/platform/sentinel"
)

var (
	// ErrHeld is returned by TryAcquire when another holder owns the key.
	ErrHeld = sentinel.ErrLockHeld
	// ErrLost is returned by Refresh and Release once the lease has expired,
	// whether or not someone else took the key since.
	ErrLost = sentinel.ErrLockLost
)

// Lease is a granted lock. It is owned by one goroutine and is not safe for
// concurrent use.
type Lease interface {
	// Refresh confirms the lease is still held and extends it by ttl.
	Refresh(ctx context.Context, ttl time.Duration) error
	// Release frees the key. Releasing a lost lease reports ErrLost; a second
	// Release after a successful one is a no-op.
	Release(ctx context.Context) error
}

// Locker grants exclusive, expiring leases on keys.
type Locker interface {
	// TryAcquire returns ErrHeld when the key is taken. ttl bounds how long a
	// crashed holder can block others; backends without expiry ignore it.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// Retry configures Acquire.
type Retry struct {
	Attempts int
	Backoff  time.Duration
}

func DefaultRetry() Retry {
	return Retry{Attempts: 50, Backoff: 100 * time.Millisecond}
}

// Acquire polls l until the lease is granted, the attempts run out or ctx is
// done. Contention is reported as CodeUnavailable.
func Acquire(ctx context.Context, l Locker, key string, ttl time.Duration, retry Retry) (Lease, error) {
	attempts := max(retry.Attempts, 1)
	for i := 0; i < attempts; i++ {
		lease, err := l.TryAcquire(ctx, key, ttl)
		if err == nil {
			return lease, nil
		}
		if !errors.Is(err, ErrHeld) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire pool lock")
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "gave up waiting for pool lock")
		case <-time.After(retry.Backoff):
		}
	}
	return nil, dErrors.New(dErrors.CodeUnavailable, "pool lock "+key+" is held by another batch")
}

// Confirm refreshes lease before a write that relies on it. A lost lease, or
// one whose backend cannot vouch for it, is reported as CodeUnavailable.
func Confirm(ctx context.Context, lease Lease, key string, ttl time.Duration) error {
	err := lease.Refresh(ctx, ttl)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrLost):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "pool lock "+key+" was lost before the batch finished")
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to refresh pool lock "+key)
	}
}
