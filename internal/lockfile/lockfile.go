// Package lockfile serializes mutating commands across processes with an
// advisory lock on a file.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Lock is a held file lock
type Lock struct {
	file *os.File
}

// Acquire blocks until the exclusive lock on path is held, creating the file
// and its directory when needed.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	return &Lock{file: file}, nil
}

// Release drops the lock. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	file := l.file
	l.file = nil

	if err := unlockFile(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to unlock: %w", err)
	}
	return file.Close()
}
