// Package runlock keeps two organizer runs from working on the same source
// directory at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another filesort run is already organizing this directory")

// Lock is a held advisory lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for source. It lives in the OS temp
// directory so the source directory never contains it.
func PathFor(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolve source directory: %w", err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(os.TempDir(), "filesort-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// Acquire takes the lock for source without blocking.
func Acquire(source string) (*Lock, error) {
	path, err := PathFor(source)
	if err != nil {
		return nil, err
	}
	return acquireAt(path)
}

func acquireAt(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. The lock file itself is left behind for reuse.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
