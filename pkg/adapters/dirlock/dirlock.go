// Package dirlock guards an output directory with an advisory file lock.
package dirlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/user/pinframe/pkg/ports"
)

// LockName is the lock file created inside the guarded directory.
const LockName = ".pinframe.lock"

// Lock implements ports.DirLocker using gofrs/flock.
type Lock struct {
	path string
	lock *flock.Flock
}

// New returns a lock for dir. The directory is created on TryLock if needed.
func New(dir string) *Lock {
	path := filepath.Join(dir, LockName)
	return &Lock{path: path, lock: flock.New(path)}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// TryLock acquires the lock without blocking. It reports false when another
// process holds it.
func (l *Lock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	return ok, nil
}

// Unlock releases the lock. The lock file stays so that a waiting process
// never locks an unlinked inode.
func (l *Lock) Unlock() error {
	if !l.lock.Locked() {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

var _ ports.DirLocker = (*Lock)(nil)
