package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// File is a Locker for processes sharing one host. Locks are advisory flock(2)
// locks on one file per key under dir and are freed by the kernel when the
// holder exits, so ttl is ignored.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (l *File) TryAcquire(_ context.Context, key string, _ time.Duration) (Lease, error) {
	fl := flock.New(filepath.Join(l.dir, fileName(key)))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("flock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &fileLease{fl: fl}, nil
}

type fileLease struct {
	fl       *flock.Flock
	released bool
}

// Refresh only checks the lock: a flock has no expiry to extend.
func (f *fileLease) Refresh(context.Context, time.Duration) error {
	if f.released || !f.fl.Locked() {
		return ErrLost
	}
	return nil
}

func (f *fileLease) Release(context.Context) error {
	if f.released {
		return nil
	}
	f.released = true
	if err := f.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", f.fl.Path(), err)
	}
	return nil
}

func fileName(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
	return safe + ".lock"
}
