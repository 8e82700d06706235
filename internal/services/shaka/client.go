package shaka

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the packager executable name when no override is given.
const DefaultBinary = "packager"

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the Shaka Packager command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: DefaultBinary}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the configured executable.
func (c *CLI) Binary() string { return c.binary }

// Package runs the packager synchronously with workDir as its working
// directory. Launch failures and reported non-zero exits produce distinct
// errors; the captured tool output is propagated on failure.
func (c *CLI) Package(ctx context.Context, workDir string, args []string) error {
	if workDir == "" {
		return errors.New("working directory required")
	}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Dir = workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch packager %q: %w", c.binary, err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("packager exited with status %d: %s", exitErr.ExitCode(), tail(output.String()))
		}
		return fmt.Errorf("packager: %w", err)
	}
	return nil
}

// tail keeps error messages readable when the packager dumps long logs.
func tail(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return "no output"
	}
	lines := strings.Split(output, "\n")
	if len(lines) > 8 {
		lines = lines[len(lines)-8:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
