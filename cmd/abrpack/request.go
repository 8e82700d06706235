package main

import (
	"abrpack/internal/abr"
	"abrpack/internal/config"
	"abrpack/internal/packrun"
)

// buildRequest merges CLI flags with config defaults into one run request.
// Flags win over config values.
func buildRequest(cfg *config.Config, flags *packFlags, destination string) (packrun.Request, error) {
	inputs, err := abr.ParseInputs(flags.inputs)
	if err != nil {
		return packrun.Request{}, err
	}

	outputFormat := flags.outputFormat
	if outputFormat == "" {
		outputFormat = cfg.Packager.OutputFormat
	}
	format, err := abr.ParseOutputFormat(outputFormat)
	if err != nil {
		return packrun.Request{}, err
	}

	segmentDuration := flags.segmentDuration
	if segmentDuration == 0 {
		segmentDuration = cfg.Packager.SegmentDuration
	}
	stagingDir := flags.stagingDir
	if stagingDir == "" {
		stagingDir = cfg.Paths.StagingRoot
	}
	packagerPath := flags.packagerPath
	if packagerPath == "" {
		packagerPath = cfg.Packager.Binary
	}
	endpoint := flags.s3EndpointURL
	if endpoint == "" {
		endpoint = cfg.S3.EndpointURL
	}

	return packrun.Request{
		Inputs:          inputs,
		SourceRoot:      flags.sourceRoot,
		Destination:     destination,
		StagingRoot:     stagingDir,
		NoImplicitAudio: flags.noImplicitAudio,
		Options: abr.Options{
			DashOnly:                  flags.dashOnly,
			HLSOnly:                   flags.hlsOnly,
			SegmentSingleFile:         flags.segmentSingleFile,
			SegmentSingleFileTemplate: flags.singleFileTemplate,
			SegmentDuration:           segmentDuration,
			OutputFormat:              format,
		},
		PackagerBinary: packagerPath,
		StorageBinary:  cfg.S3.Binary,
		S3EndpointURL:  endpoint,
		BearerToken:    bearerTokenFromEnv(),
	}, nil
}
