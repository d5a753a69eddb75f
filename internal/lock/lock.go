// Package lock guards a scan root against concurrent runs. Two runs
// disposing files under the same root would race each other, so each
// root gets an advisory file lock for the lifetime of a run.
package lock

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLockHeld indicates another run already holds the lock for a root.
var ErrLockHeld = errors.New("another run is active for this root")

// ScanLock is an advisory per-root lock.
type ScanLock struct {
	path string
	lock *flock.Flock
}

// New creates a lock for root. The lock file lives under the user cache
// directory, named by a digest of the normalized root so distinct roots
// never contend.
func New(root string) (*ScanLock, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid scan root: %w", err)
	}

	dir, err := lockDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate lock directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	path := filepath.Join(dir, fmt.Sprintf("%x.lock", sum[:8]))

	return &ScanLock{path: path, lock: flock.New(path)}, nil
}

// Path returns the lock file location.
func (l *ScanLock) Path() string {
	return l.path
}

// AcquireOrFail takes the lock without blocking. Returns ErrLockHeld
// when another process holds it.
func (l *ScanLock) AcquireOrFail() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire scan lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock file %s)", ErrLockHeld, l.path)
	}
	return nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *ScanLock) Release() error {
	return l.lock.Unlock()
}

func lockDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "godedupe"), nil
}
