package awscli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the storage CLI executable name.
const DefaultBinary = "aws"

var commandContext = exec.CommandContext

// Option configures the client.
type Option func(*CLI)

// WithBinary overrides the default executable.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// WithEndpoint points every transfer at a non-default S3 endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *CLI) {
		c.endpoint = strings.TrimSpace(endpoint)
	}
}

// CLI wraps the aws command-line tool's s3 subcommands.
type CLI struct {
	binary   string
	endpoint string
}

// New constructs a client using defaults.
func New(opts ...Option) *CLI {
	cli := &CLI{binary: DefaultBinary}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the configured executable.
func (c *CLI) Binary() string { return c.binary }

// Copy transfers a single object between src and dst; either side may be an
// s3:// URL or a local path.
func (c *CLI) Copy(ctx context.Context, src, dst string) error {
	return c.run(ctx, "cp", src, dst)
}

// CopyRecursive transfers the contents of srcDir under dstURL.
func (c *CLI) CopyRecursive(ctx context.Context, srcDir, dstURL string) error {
	return c.run(ctx, "cp", "--recursive", srcDir, dstURL)
}

func (c *CLI) run(ctx context.Context, subArgs ...string) error {
	args := make([]string, 0, len(subArgs)+3)
	if c.endpoint != "" {
		args = append(args, "--endpoint-url", c.endpoint)
	}
	args = append(args, "s3")
	args = append(args, subArgs...)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %q: %w", c.binary, err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(output.String())
			if detail == "" {
				detail = "no output"
			}
			return fmt.Errorf("aws s3 %s exited with status %d: %s", subArgs[0], exitErr.ExitCode(), detail)
		}
		return fmt.Errorf("aws s3 %s: %w", subArgs[0], err)
	}
	return nil
}
