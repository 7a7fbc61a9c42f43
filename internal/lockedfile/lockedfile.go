// Package lockedfile provides a file-based mutex serializing access to
// shared on-disk state across processes.
package lockedfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// A Mutex guards shared state by locking a sidecar lock file.
type Mutex struct {
	Path string
}

// MutexAt returns a Mutex that locks the file at the given path.
func MutexAt(path string) *Mutex {
	return &Mutex{Path: path}
}

// Lock acquires the lock, creating the lock file and its parent
// directory as needed. It blocks until the lock is available and
// returns the function that releases it.
func (mu *Mutex) Lock() (unlock func(), err error) {
	if mu.Path == "" {
		panic("lockedfile.Mutex: missing Path during Lock")
	}
	if err := os.MkdirAll(filepath.Dir(mu.Path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(mu.Path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", mu.Path, err)
	}
	if err := lock(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock %s: %w", mu.Path, err)
	}
	return func() {
		unlockFile(f)
		f.Close()
	}, nil
}
