package packrun

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"abrpack/internal/abr"
	"abrpack/internal/history"
	"abrpack/internal/services"
	"abrpack/internal/staging"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func fakePackager(t *testing.T) string {
	return writeScript(t, "packager", `cat > index.m3u8 <<'EOF'
#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=4000000,CODECS="avc1.64001f"
video-hd.m3u8
EOF
echo '<MPD/>' > manifest.mpd`)
}

func localVideo(t *testing.T) (string, abr.Input) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hd.mp4")
	if err := os.WriteFile(path, []byte("mezzanine"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, abr.Input{Kind: abr.KindVideo, Key: "hd", Filename: "hd.mp4"}
}

func TestValidateConfigurationErrors(t *testing.T) {
	base := Request{
		Inputs:      []abr.Input{{Kind: abr.KindVideo, Key: "hd", Filename: "hd.mp4"}},
		Destination: "/out",
		StagingRoot: "/tmp/staging",
	}

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no inputs", func(r *Request) { r.Inputs = nil }},
		{"exclusive format flags", func(r *Request) { r.Options.DashOnly = true; r.Options.HLSOnly = true }},
		{"single-file template missing placeholder", func(r *Request) {
			r.Options.SegmentSingleFile = true
			r.Options.SegmentSingleFileTemplate = "media.mp4"
		}},
		{"remote source without staging", func(r *Request) {
			r.Inputs = []abr.Input{{Kind: abr.KindVideo, Key: "hd", Filename: "s3://bucket/hd.mp4"}}
			r.StagingRoot = ""
		}},
		{"unsupported destination scheme", func(r *Request) { r.Destination = "ftp://host/out" }},
		{"http destination", func(r *Request) { r.Destination = "https://host/out" }},
		{"missing destination", func(r *Request) { r.Destination = "" }},
		{"unsupported input scheme", func(r *Request) {
			r.Inputs = []abr.Input{{Kind: abr.KindVideo, Key: "hd", Filename: "gopher://host/hd.mp4"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			err := Validate(req)
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if !services.IsConfiguration(err) {
				t.Fatalf("expected configuration classification, got %v", err)
			}
		})
	}
}

func TestValidateAcceptsRemoteSourceWithStaging(t *testing.T) {
	req := Request{
		Inputs:      []abr.Input{{Kind: abr.KindVideo, Key: "hd", Filename: "video.mp4"}},
		SourceRoot:  "s3://bucket/assets",
		Destination: "s3://bucket/out",
		StagingRoot: t.TempDir(),
	}
	if err := Validate(req); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestPlanResolvesLocationsAndArgs(t *testing.T) {
	req := Request{
		Inputs:      []abr.Input{{Kind: abr.KindVideo, Key: "hd", Filename: "video.mp4"}},
		SourceRoot:  "s3://bucket/assets",
		Destination: "/out",
		StagingRoot: t.TempDir(),
	}
	locations, args, err := Plan(req)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if locations[0] != "s3://bucket/assets/video.mp4" {
		t.Fatalf("resolved location = %q", locations[0])
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "in=s3://bucket/assets/video.mp4") {
		t.Fatalf("plan args missing resolved input: %q", joined)
	}
}

func TestRunLocalEndToEnd(t *testing.T) {
	sourceDir, video := localVideo(t)
	stagingRoot := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")

	runner := New()
	req := Request{
		Inputs:         []abr.Input{video},
		SourceRoot:     sourceDir,
		Destination:    dest,
		StagingRoot:    stagingRoot,
		PackagerBinary: fakePackager(t),
	}
	if err := runner.Run(context.Background(), req); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, name := range []string{"index.m3u8", "manifest.mpd"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("package file %q missing at destination: %v", name, err)
		}
	}

	entries, err := os.ReadDir(stagingRoot)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), staging.DirPrefix) {
			t.Fatalf("staging run dir %q left behind", entry.Name())
		}
	}
}

func TestRunPackagerFailureRecordedInHistory(t *testing.T) {
	sourceDir, video := localVideo(t)
	historyPath := filepath.Join(t.TempDir(), "history.db")
	failing := writeScript(t, "packager", `echo 'stream descriptor rejected' >&2
exit 2`)

	runner := New(WithHistoryDB(historyPath))
	req := Request{
		Inputs:         []abr.Input{video},
		SourceRoot:     sourceDir,
		Destination:    filepath.Join(t.TempDir(), "out"),
		StagingRoot:    t.TempDir(),
		PackagerBinary: failing,
	}
	err := runner.Run(context.Background(), req)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "stream descriptor rejected") {
		t.Fatalf("expected captured packager output, got %v", err)
	}

	store, openErr := history.Open(historyPath)
	if openErr != nil {
		t.Fatalf("open history: %v", openErr)
	}
	defer store.Close()
	runs, listErr := store.Recent(context.Background(), 5)
	if listErr != nil {
		t.Fatal(listErr)
	}
	if len(runs) != 1 || runs[0].Status != history.StatusFailed {
		t.Fatalf("unexpected history records: %+v", runs)
	}
}

func TestRunLaunchFailureDistinguished(t *testing.T) {
	sourceDir, video := localVideo(t)
	runner := New()
	req := Request{
		Inputs:         []abr.Input{video},
		SourceRoot:     sourceDir,
		Destination:    filepath.Join(t.TempDir(), "out"),
		StagingRoot:    t.TempDir(),
		PackagerBinary: "definitely-not-a-real-packager",
	}
	err := runner.Run(context.Background(), req)
	if err == nil {
		t.Fatal("expected launch failure")
	}
	if !strings.Contains(err.Error(), "launch packager") {
		t.Fatalf("expected launch failure message, got %v", err)
	}
}
