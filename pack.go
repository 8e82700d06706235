// Package abrpack turns a set of independent audio/video/subtitle streams
// into an adaptive bitrate package (DASH manifest + HLS playlists) by
// orchestrating Shaka Packager: fetch the inputs, invoke the tool, publish
// the result to a directory or object storage.
package abrpack

import (
	"context"
	"log/slog"

	"abrpack/internal/abr"
	"abrpack/internal/packrun"
)

// Re-exported stream input model.
type (
	Kind    = abr.Kind
	Input   = abr.Input
	Options = abr.Options
)

const (
	KindAudio = abr.KindAudio
	KindVideo = abr.KindVideo
	KindText  = abr.KindText

	OutputFMP4 = abr.OutputFMP4
	OutputTS   = abr.OutputTS
)

// ParseInput parses the [a|v|t]:<key>=<filename>[:label] input syntax.
func ParseInput(spec string) (Input, error) { return abr.ParseInput(spec) }

// Job describes one packaging run.
type Job struct {
	// Inputs lists the elementary streams to package.
	Inputs []Input
	// SourceRoot optionally prefixes inputs that are not fully qualified.
	SourceRoot string
	// Destination receives the finished package: a directory or an
	// s3:// prefix.
	Destination string
	// StagingRoot hosts the ephemeral per-run working directory. Required
	// when any input is remote; defaults to the system temp directory for
	// all-local runs.
	StagingRoot string
	// NoImplicitAudio disables the fallback that turns the first video
	// input into the audio source when no audio input is given.
	NoImplicitAudio bool
	// Format controls manifest emission and segment layout.
	Format Options

	// PackagerPath overrides the packager executable.
	PackagerPath string
	// StoragePath overrides the object-storage CLI executable.
	StoragePath string
	// S3EndpointURL points transfers at a non-default S3 endpoint.
	S3EndpointURL string
	// BearerToken is attached to HTTP(S) input fetches.
	BearerToken string

	// Logger receives run progress; nil discards it.
	Logger *slog.Logger
	// HistoryDB, when set, records the run in the SQLite database at this
	// path.
	HistoryDB string
}

// Run validates the job and performs it: stage, fetch, package, publish.
// Every failure is terminal and reported through the returned error.
func Run(ctx context.Context, job Job) error {
	opts := []packrun.Option{}
	if job.Logger != nil {
		opts = append(opts, packrun.WithLogger(job.Logger))
	}
	if job.HistoryDB != "" {
		opts = append(opts, packrun.WithHistoryDB(job.HistoryDB))
	}
	runner := packrun.New(opts...)
	return runner.Run(ctx, packrun.Request{
		Inputs:          job.Inputs,
		SourceRoot:      job.SourceRoot,
		Destination:     job.Destination,
		StagingRoot:     job.StagingRoot,
		NoImplicitAudio: job.NoImplicitAudio,
		Options:         job.Format,
		PackagerBinary:  job.PackagerPath,
		StorageBinary:   job.StoragePath,
		S3EndpointURL:   job.S3EndpointURL,
		BearerToken:     job.BearerToken,
	})
}
