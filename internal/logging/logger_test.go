package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestNewTeesIntoLogDir(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Options{Format: "json", Level: "debug", LogDir: dir})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("packaging started", String("run_id", "abc"))

	data, err := os.ReadFile(filepath.Join(dir, "abrpack.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "packaging started") {
		t.Fatalf("log file missing entry: %q", string(data))
	}
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	} {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestErrorAttrHandlesNil(t *testing.T) {
	attr := Error(nil)
	if attr.Value.String() != "<nil>" {
		t.Fatalf("Error(nil) = %q", attr.Value.String())
	}
}
