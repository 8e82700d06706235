// Package publish moves a finished package out of staging to its
// destination: a local directory or an object-storage prefix.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"abrpack/internal/fileutil"
	"abrpack/internal/logging"
	"abrpack/internal/services"
	"abrpack/internal/transfer"
)

// ObjectStore abstracts the storage CLI used for recursive uploads.
type ObjectStore interface {
	CopyRecursive(ctx context.Context, srcDir, dstURL string) error
}

// Option configures the publisher.
type Option func(*Publisher)

// WithLogger sets the publish logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Publisher delivers staged packages.
type Publisher struct {
	store  ObjectStore
	logger *slog.Logger
}

// New constructs a publisher backed by the given object store.
func New(store ObjectStore, opts ...Option) *Publisher {
	publisher := &Publisher{store: store, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(publisher)
	}
	return publisher
}

// Publish delivers every file in stagingDir to dest. downloadedSources names
// the input files that were fetched into staging; on object-storage uploads
// they are removed first so the package upload does not include them.
func (p *Publisher) Publish(ctx context.Context, stagingDir, dest string, downloadedSources []string) error {
	scheme, err := transfer.SchemeOf(dest)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "publish", "", err.Error(), nil)
	}

	switch scheme {
	case transfer.SchemeLocal:
		target, err := transfer.LocalPath(dest)
		if err != nil {
			return services.Wrap(services.ErrPublish, "publish", "resolve destination", "", err)
		}
		if err := fileutil.MoveDirContents(stagingDir, target); err != nil {
			return services.Wrap(services.ErrPublish, "publish", "move", "", err)
		}
		p.logger.InfoContext(ctx, "package moved to destination", logging.String("dest", target))
		return nil
	case transfer.SchemeS3:
		for _, source := range downloadedSources {
			if err := os.Remove(source); err != nil && !os.IsNotExist(err) {
				return services.Wrap(services.ErrPublish, "publish", "remove staged source", source, err)
			}
		}
		if err := p.store.CopyRecursive(ctx, stagingDir, dest); err != nil {
			return services.Wrap(services.ErrPublish, "publish", "s3 upload", dest, err)
		}
		p.logger.InfoContext(ctx, "package uploaded", logging.String("dest", dest))
		return nil
	default:
		return services.Wrap(services.ErrConfiguration, "publish", "",
			fmt.Sprintf("unsupported destination %q", dest), nil)
	}
}
