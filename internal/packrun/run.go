// Package packrun drives one packaging run end to end: validate, stage,
// fetch, invoke the packager, inspect, publish, record.
package packrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"abrpack/internal/abr"
	"abrpack/internal/history"
	"abrpack/internal/logging"
	"abrpack/internal/media/playlist"
	"abrpack/internal/publish"
	"abrpack/internal/services"
	"abrpack/internal/services/awscli"
	"abrpack/internal/services/shaka"
	"abrpack/internal/staging"
	"abrpack/internal/transfer"
)

// Request describes one packaging run.
type Request struct {
	Inputs          []abr.Input
	SourceRoot      string
	Destination     string
	StagingRoot     string
	NoImplicitAudio bool
	Options         abr.Options

	PackagerBinary string
	StorageBinary  string
	S3EndpointURL  string
	BearerToken    string
}

// Option configures the runner.
type Option func(*Runner)

// WithLogger sets the run logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHistoryDB enables run recording in the given SQLite database.
func WithHistoryDB(path string) Option {
	return func(r *Runner) {
		r.historyPath = path
	}
}

// Runner executes packaging runs.
type Runner struct {
	logger      *slog.Logger
	historyPath string
}

// New constructs a runner.
func New(opts ...Option) *Runner {
	runner := &Runner{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Validate reports configuration errors without performing any I/O.
func Validate(req Request) error {
	if err := abr.ValidateInputs(req.Inputs); err != nil {
		return services.Wrap(services.ErrConfiguration, "validate", "inputs", err.Error(), nil)
	}
	if err := req.Options.Validate(); err != nil {
		return services.Wrap(services.ErrConfiguration, "validate", "options", err.Error(), nil)
	}
	if req.Destination == "" {
		return services.Wrap(services.ErrConfiguration, "validate", "", "destination required", nil)
	}
	destScheme, err := transfer.SchemeOf(req.Destination)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "validate", "destination", err.Error(), nil)
	}
	if destScheme == transfer.SchemeHTTP {
		return services.Wrap(services.ErrConfiguration, "validate", "destination",
			fmt.Sprintf("cannot publish to %q", req.Destination), nil)
	}
	for _, input := range req.Inputs {
		location := transfer.Resolve(input.Filename, req.SourceRoot)
		scheme, err := transfer.SchemeOf(location)
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "validate", "inputs", err.Error(), nil)
		}
		if scheme != transfer.SchemeLocal && req.StagingRoot == "" {
			return services.Wrap(services.ErrConfiguration, "validate", "inputs",
				fmt.Sprintf("remote source %q requires a staging directory", location), nil)
		}
	}
	return nil
}

// Plan returns the resolved input locations and the packager argument list
// without touching the filesystem or network. Remote inputs appear with
// their remote locations since staging has not happened yet.
func Plan(req Request) ([]string, []string, error) {
	if err := Validate(req); err != nil {
		return nil, nil, err
	}
	resolved := make([]abr.Input, len(req.Inputs))
	locations := make([]string, len(req.Inputs))
	for i, input := range req.Inputs {
		resolved[i] = input
		resolved[i].Filename = transfer.Resolve(input.Filename, req.SourceRoot)
		locations[i] = resolved[i].Filename
	}
	return locations, shaka.BuildArgs(resolved, req.Options, req.NoImplicitAudio), nil
}

// Run executes a packaging run and reports failure through its error.
func (r *Runner) Run(ctx context.Context, req Request) error {
	if err := Validate(req); err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := r.logger.With(logging.String("run_id", runID))
	start := time.Now()

	record := r.beginHistory(ctx, runID, req, logger)
	err := r.execute(ctx, runID, req, logger)
	record(err)
	if err != nil {
		logger.ErrorContext(ctx, "packaging run failed", logging.Error(err), logging.Duration("elapsed", time.Since(start)))
		return err
	}
	logger.InfoContext(ctx, "packaging run completed",
		logging.String("dest", req.Destination),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

func (r *Runner) execute(ctx context.Context, runID string, req Request, logger *slog.Logger) error {
	stagingRoot := req.StagingRoot
	if stagingRoot == "" {
		// Validated: all inputs are local and the destination is a
		// directory, but the packager still needs somewhere to write.
		stagingRoot = os.TempDir()
	}
	runDir, err := staging.Create(stagingRoot, runID)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "staging", "", "", err)
	}
	logger.DebugContext(ctx, "staging directory created", logging.String("path", runDir.Path))

	store := awscli.New(awscli.WithBinary(req.StorageBinary), awscli.WithEndpoint(req.S3EndpointURL))
	fetcher := transfer.NewFetcher(store,
		transfer.WithBearerToken(req.BearerToken),
		transfer.WithLogger(logger))

	result, err := fetcher.FetchAll(ctx, req.Inputs, req.SourceRoot, runDir.Path)
	if err != nil {
		runDir.Release()
		logger.WarnContext(ctx, "staging directory kept for inspection", logging.String("path", runDir.Path))
		return err
	}

	args := shaka.BuildArgs(result.Inputs, req.Options, req.NoImplicitAudio)
	logger.InfoContext(ctx, "invoking packager",
		logging.String("binary", packagerBinary(req)),
		logging.Int("streams", len(args)))

	packager := shaka.NewCLI(shaka.WithBinary(req.PackagerBinary))
	if err := packager.Package(ctx, runDir.Path, args); err != nil {
		runDir.Release()
		logger.WarnContext(ctx, "staging directory kept for inspection", logging.String("path", runDir.Path))
		return services.Wrap(services.ErrExternalTool, "package", "packager", "", err)
	}

	r.inspect(ctx, runDir.Path, req.Options, logger)

	publisher := publish.New(store, publish.WithLogger(logger))
	publishErr := publisher.Publish(ctx, runDir.Path, req.Destination, result.Staged)
	// The upload was at least attempted; staging cleanup is best-effort
	// from here on.
	if removeErr := runDir.Remove(); removeErr != nil {
		logger.WarnContext(ctx, "staging cleanup failed", logging.Error(removeErr))
	}
	return publishErr
}

func (r *Runner) inspect(ctx context.Context, stagingDir string, opts abr.Options, logger *slog.Logger) {
	if opts.DashOnly {
		return
	}
	summary, err := playlist.InspectMaster(stagingDir + "/" + shaka.MasterPlaylistName)
	if err != nil {
		logger.WarnContext(ctx, "master playlist inspection failed", logging.Error(err))
		return
	}
	logger.InfoContext(ctx, "master playlist written",
		logging.Int("variants", summary.Variants),
		logging.Int("alternative_renditions", summary.Alternatives))
}

// beginHistory records the run start and returns a closure that records the
// outcome. History failures never fail the run.
func (r *Runner) beginHistory(ctx context.Context, runID string, req Request, logger *slog.Logger) func(error) {
	if r.historyPath == "" {
		return func(error) {}
	}
	store, err := history.Open(r.historyPath)
	if err != nil {
		logger.WarnContext(ctx, "run history unavailable", logging.Error(err))
		return func(error) {}
	}
	if err := store.Begin(ctx, runID, req.Destination, len(req.Inputs)); err != nil {
		logger.WarnContext(ctx, "run history unavailable", logging.Error(err))
		_ = store.Close()
		return func(error) {}
	}
	return func(runErr error) {
		if err := store.Finish(context.WithoutCancel(ctx), runID, runErr); err != nil {
			logger.WarnContext(ctx, "run history update failed", logging.Error(err))
		}
		_ = store.Close()
	}
}

func packagerBinary(req Request) string {
	if req.PackagerBinary != "" {
		return req.PackagerBinary
	}
	return shaka.DefaultBinary
}
