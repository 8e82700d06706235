// Package staging manages the ephemeral working directories that scope one
// packaging run, plus the sweep that removes abandoned ones.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// DirPrefix names run directories under the staging root.
const DirPrefix = "abrpack-"

const lockFileName = ".abrpack.lock"

// RunDir is the staging directory owned by a single packaging run. Holding
// it keeps a shared lock on the staging root so a concurrent CleanStale
// cannot sweep directories out from under an active run.
type RunDir struct {
	Path string
	lock *flock.Flock
}

// Create makes <root>/abrpack-<runID> and acquires the shared root lock.
func Create(root, runID string) (*RunDir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("staging root required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create staging root: %w", err)
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryRLock()
	if err != nil {
		return nil, fmt.Errorf("lock staging root: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("staging root %q is locked for cleanup", root)
	}

	path := filepath.Join(root, DirPrefix+runID)
	if err := os.Mkdir(path, 0o755); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	return &RunDir{Path: path, lock: lock}, nil
}

// Remove deletes the run directory and releases the root lock.
func (d *RunDir) Remove() error {
	if d == nil {
		return nil
	}
	err := os.RemoveAll(d.Path)
	d.Release()
	return err
}

// Release drops the shared root lock without touching the directory.
func (d *RunDir) Release() {
	if d == nil || d.lock == nil {
		return
	}
	_ = d.lock.Unlock()
	d.lock = nil
}
