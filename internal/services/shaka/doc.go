// Package shaka mediates access to the Shaka Packager CLI that performs the
// actual segmenting and manifest generation.
//
// It derives the per-stream descriptor strings (segment templates, playlist
// names, HLS grouping, single-file output names) and the global manifest
// flags from the run's inputs and options, and runs the binary synchronously
// with the staging directory as its working directory.
//
// Prefer this package over ad-hoc exec.Command usage when invoking the
// packager so launch failures and non-zero exits stay distinguishable.
package shaka
