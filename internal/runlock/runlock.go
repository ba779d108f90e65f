package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning reports that another invocation holds the lock.
var ErrAlreadyRunning = errors.New("another shortwave run is already in progress")

// Lock is a file-based mutual exclusion guard for pipeline runs.
type Lock struct {
	path string
	lock *flock.Flock
}

// New builds a lock rooted in the given work directory.
func New(workDir string) *Lock {
	path := filepath.Join(workDir, "shortwave.lock")
	return &Lock{
		path: path,
		lock: flock.New(path),
	}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. It returns ErrAlreadyRunning when
// another process holds it.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
