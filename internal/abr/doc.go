// Package abr models the elementary stream inputs and packaging options that
// describe one adaptive bitrate bundle.
//
// It parses the CLI input syntax ([a|v|t]:<key>=<filename>[:label]), enforces
// per-kind key uniqueness, validates the packaging format options, and hosts
// the audio selection decision table used during argument construction.
//
// Everything here is pure data and validation; transfer and packager
// invocation live elsewhere.
package abr
