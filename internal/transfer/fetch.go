package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"abrpack/internal/abr"
	"abrpack/internal/logging"
	"abrpack/internal/services"
)

// ObjectStore abstracts the storage CLI used for s3 downloads.
type ObjectStore interface {
	Copy(ctx context.Context, src, dst string) error
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithHTTPClient injects a custom HTTP client (primarily for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithBearerToken attaches a bearer credential to HTTP(S) fetches.
func WithBearerToken(token string) Option {
	return func(f *Fetcher) {
		f.token = token
	}
}

// WithLogger sets the fetch logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Fetcher resolves every input of one run to a local file.
type Fetcher struct {
	store      ObjectStore
	httpClient *http.Client
	token      string
	logger     *slog.Logger
}

// NewFetcher constructs a fetcher backed by the given object store.
func NewFetcher(store ObjectStore, opts ...Option) *Fetcher {
	fetcher := &Fetcher{
		store:      store,
		httpClient: &http.Client{Timeout: 15 * time.Minute},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// Result carries the localized inputs plus the staged files that were
// downloaded (and must not be re-uploaded alongside the package).
type Result struct {
	Inputs []abr.Input
	Staged []string
}

// FetchAll resolves every input concurrently and waits for the whole set.
// A single failed download fails the run.
func (f *Fetcher) FetchAll(ctx context.Context, inputs []abr.Input, sourceRoot, stagingDir string) (Result, error) {
	localized := make([]abr.Input, len(inputs))
	staged := make([]string, len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		group.Go(func() error {
			localPath, downloaded, err := f.fetchOne(groupCtx, input, sourceRoot, stagingDir)
			if err != nil {
				return err
			}
			local := input
			local.Filename = localPath
			localized[i] = local
			if downloaded {
				staged[i] = localPath
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Inputs: localized}
	for _, path := range staged {
		if path != "" {
			result.Staged = append(result.Staged, path)
		}
	}
	return result, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, input abr.Input, sourceRoot, stagingDir string) (string, bool, error) {
	location := Resolve(input.Filename, sourceRoot)
	scheme, err := SchemeOf(location)
	if err != nil {
		return "", false, services.Wrap(services.ErrConfiguration, "fetch", "", err.Error(), nil)
	}

	if scheme == SchemeLocal {
		local, err := LocalPath(location)
		if err != nil {
			return "", false, services.Wrap(services.ErrTransfer, "fetch", "resolve", "", err)
		}
		return local, false, nil
	}

	if stagingDir == "" {
		return "", false, services.Wrap(services.ErrConfiguration, "fetch", "",
			fmt.Sprintf("remote source %q requires a staging directory", location), nil)
	}

	dest := filepath.Join(stagingDir, stagedName(input, location))
	start := time.Now()
	switch scheme {
	case SchemeS3:
		if err := f.store.Copy(ctx, location, dest); err != nil {
			return "", false, services.Wrap(services.ErrTransfer, "fetch", "s3 copy", location, err)
		}
	case SchemeHTTP:
		if err := f.httpFetch(ctx, location, dest); err != nil {
			return "", false, services.Wrap(services.ErrTransfer, "fetch", "http get", location, err)
		}
	}
	f.logger.InfoContext(ctx, "input downloaded",
		logging.String("key", input.Key),
		logging.String("source", location),
		logging.Duration("elapsed", time.Since(start)))
	return dest, true, nil
}

func (f *Fetcher) httpFetch(ctx context.Context, location, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return err
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	return out.Close()
}

// stagedName prefixes the downloaded basename with kind and key so two
// renditions sharing a basename never overwrite each other in staging.
func stagedName(input abr.Input, location string) string {
	return fmt.Sprintf("%c-%s-%s", input.Kind[0], input.Key, baseName(location))
}
