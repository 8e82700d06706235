package staging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"abrpack/internal/logging"
)

// CleanStaleResult contains the outcome of a stale directory cleanup.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes abrpack run directories older than maxAge. It takes the
// exclusive root lock, so it refuses to run while any packaging run holds
// the shared lock.
func CleanStale(ctx context.Context, root string, maxAge time.Duration, logger *slog.Logger) (CleanStaleResult, error) {
	result := CleanStaleResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	root = strings.TrimSpace(root)
	if root == "" {
		return result, nil
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("lock staging root: %w", err)
	}
	if !locked {
		return result, fmt.Errorf("staging root %q is in use by an active run", root)
	}
	defer lock.Unlock()

	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: root, Error: err})
		}
		return result, nil
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), DirPrefix) {
			continue
		}
		dirPath := filepath.Join(root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(dirPath); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			continue
		}
		logger.InfoContext(ctx, "removed stale staging directory", logging.String("path", dirPath))
		result.Removed = append(result.Removed, dirPath)
	}
	return result, nil
}
