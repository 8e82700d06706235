package main

import (
	"testing"

	"abrpack/internal/abr"
	"abrpack/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Paths.StagingRoot = "/var/lib/abrpack/staging"
	cfg.Packager.Binary = "packager"
	cfg.Packager.SegmentDuration = 6
	cfg.S3.EndpointURL = "https://minio.local:9000"
	return &cfg
}

func TestBuildRequestUsesConfigDefaults(t *testing.T) {
	flags := &packFlags{inputs: []string{"v:hd=hd.mp4"}}
	req, err := buildRequest(testConfig(), flags, "s3://bucket/out")
	if err != nil {
		t.Fatalf("buildRequest returned error: %v", err)
	}
	if req.StagingRoot != "/var/lib/abrpack/staging" {
		t.Fatalf("staging root = %q", req.StagingRoot)
	}
	if req.PackagerBinary != "packager" {
		t.Fatalf("packager = %q", req.PackagerBinary)
	}
	if req.Options.SegmentDuration != 6 {
		t.Fatalf("segment duration = %d", req.Options.SegmentDuration)
	}
	if req.S3EndpointURL != "https://minio.local:9000" {
		t.Fatalf("endpoint = %q", req.S3EndpointURL)
	}
	if req.Options.OutputFormat != abr.OutputFMP4 {
		t.Fatalf("output format = %q", req.Options.OutputFormat)
	}
}

func TestBuildRequestFlagsWinOverConfig(t *testing.T) {
	flags := &packFlags{
		inputs:          []string{"v:hd=hd.mp4", "a:main=audio.mp4:English"},
		stagingDir:      "/tmp/override",
		packagerPath:    "/opt/packager",
		s3EndpointURL:   "https://other:9000",
		segmentDuration: 2,
		outputFormat:    "ts",
		noImplicitAudio: true,
	}
	req, err := buildRequest(testConfig(), flags, "/out")
	if err != nil {
		t.Fatalf("buildRequest returned error: %v", err)
	}
	if req.StagingRoot != "/tmp/override" || req.PackagerBinary != "/opt/packager" {
		t.Fatalf("flag overrides not applied: %+v", req)
	}
	if req.S3EndpointURL != "https://other:9000" {
		t.Fatalf("endpoint = %q", req.S3EndpointURL)
	}
	if req.Options.SegmentDuration != 2 || req.Options.OutputFormat != abr.OutputTS {
		t.Fatalf("format options not applied: %+v", req.Options)
	}
	if !req.NoImplicitAudio {
		t.Fatal("no-implicit-audio flag not applied")
	}
	if len(req.Inputs) != 2 || req.Inputs[1].Label != "English" {
		t.Fatalf("inputs not parsed: %+v", req.Inputs)
	}
}

func TestBuildRequestRejectsBadInputSpec(t *testing.T) {
	flags := &packFlags{inputs: []string{"bogus"}}
	if _, err := buildRequest(testConfig(), flags, "/out"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestBuildRequestRejectsDuplicateKeys(t *testing.T) {
	flags := &packFlags{inputs: []string{"v:hd=a.mp4", "v:hd=b.mp4"}}
	if _, err := buildRequest(testConfig(), flags, "/out"); err == nil {
		t.Fatal("expected duplicate key error")
	}
}
