package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemory is a process-local Locker.
type InMemory struct {
	mu    sync.Mutex
	held  map[string]memoryHold
	clock func() time.Time
}

type memoryHold struct {
	token     string
	expiresAt time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{held: make(map[string]memoryHold), clock: time.Now}
}

func (l *InMemory) TryAcquire(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock()
	if h, ok := l.held[key]; ok && (h.expiresAt.IsZero() || now.Before(h.expiresAt)) {
		return nil, ErrHeld
	}
	h := memoryHold{token: uuid.NewString()}
	if ttl > 0 {
		h.expiresAt = now.Add(ttl)
	}
	l.held[key] = h
	return &memoryLease{locker: l, key: key, token: h.token}, nil
}

type memoryLease struct {
	locker   *InMemory
	key      string
	token    string
	released bool
}

func (m *memoryLease) Refresh(_ context.Context, ttl time.Duration) error {
	m.locker.mu.Lock()
	defer m.locker.mu.Unlock()
	if m.released || !m.heldLocked() {
		return ErrLost
	}
	h := m.locker.held[m.key]
	h.expiresAt = time.Time{}
	if ttl > 0 {
		h.expiresAt = m.locker.clock().Add(ttl)
	}
	m.locker.held[m.key] = h
	return nil
}

// Release frees the key unless the lease expired and someone else took it.
func (m *memoryLease) Release(context.Context) error {
	m.locker.mu.Lock()
	defer m.locker.mu.Unlock()
	if m.released {
		return nil
	}
	m.released = true
	held := m.heldLocked()
	if h, ok := m.locker.held[m.key]; ok && h.token == m.token {
		delete(m.locker.held, m.key)
	}
	if !held {
		return ErrLost
	}
	return nil
}

// heldLocked reports whether the key is still ours and unexpired. The caller
// holds locker.mu.
func (m *memoryLease) heldLocked() bool {
	h, ok := m.locker.held[m.key]
	if !ok || h.token != m.token {
		return false
	}
	return h.expiresAt.IsZero() || m.locker.clock().Before(h.expiresAt)
}
