// Package services defines shared utilities consumed by the packaging
// pipeline and external tool integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (configuration vs transfer vs packaging vs publish)
//     consistent across the run.
//   - Thin abstractions that make command execution from external tools
//     testable.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// stays uniform.
package services
