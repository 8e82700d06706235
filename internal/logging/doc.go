// Package logging builds the slog loggers used across the CLI and library.
//
// It supports console (text) and JSON output, optional log-file teeing, and
// provides thin attribute helpers so call sites stay consistent. Obtain
// loggers through this package rather than constructing slog handlers inline.
package logging
