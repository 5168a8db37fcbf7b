package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// InstanceLock is an advisory lock in the system temp directory used to
// keep at most one watcher running per env file.
type InstanceLock struct {
	lock *flock.Flock
	path string
}

// AcquireInstanceLock takes the lock named filename, failing when another
// process already holds it.
func AcquireInstanceLock(filename string) (*InstanceLock, error) {
	path := filepath.Join(os.TempDir(), filename)
	l := flock.New(path)

	locked, err := l.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire lock (%s)", path)
	}
	return &InstanceLock{lock: l, path: path}, nil
}

// Path returns the lock file location.
func (l *InstanceLock) Path() string { return l.path }

// Release unlocks and removes the lock file.
func (l *InstanceLock) Release() {
	if l == nil {
		return
	}
	if l.lock != nil {
		_ = l.lock.Unlock()
	}
	if l.path != "" {
		_ = os.Remove(l.path)
	}
}
