package abr

import (
	"fmt"
	"strings"
)

// KeyPlaceholder is substituted with the (possibly disambiguated) stream key
// when single-file segment templates are expanded.
const KeyPlaceholder = "$KEY$"

// OutputFormat selects the media container the packager writes.
type OutputFormat string

const (
	OutputFMP4 OutputFormat = "fmp4"
	OutputTS   OutputFormat = "ts"
)

// ParseOutputFormat maps the CLI/config spelling to an OutputFormat.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "fmp4", "mp4":
		return OutputFMP4, nil
	case "ts":
		return OutputTS, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected fmp4 or ts)", value)
	}
}

// Options control manifest emission and segment layout for one run.
type Options struct {
	// DashOnly suppresses the HLS master playlist; HLSOnly suppresses the
	// DASH manifest. Setting both leaves nothing to emit and fails
	// validation.
	DashOnly bool
	HLSOnly  bool

	// SegmentSingleFile switches to single-file byte-range addressing.
	// SegmentSingleFileTemplate names the per-stream output file and must
	// contain the $KEY$ placeholder.
	SegmentSingleFile         bool
	SegmentSingleFileTemplate string

	// SegmentDuration is the target segment length in seconds; zero leaves
	// the packager default in place.
	SegmentDuration int

	OutputFormat OutputFormat
}

// Validate reports configuration errors before any I/O happens.
func (o Options) Validate() error {
	if o.DashOnly && o.HLSOnly {
		return fmt.Errorf("dash-only and hls-only are mutually exclusive")
	}
	if o.SegmentSingleFile {
		if strings.TrimSpace(o.SegmentSingleFileTemplate) == "" {
			return fmt.Errorf("single-file segments require a filename template")
		}
		if !strings.Contains(o.SegmentSingleFileTemplate, KeyPlaceholder) {
			return fmt.Errorf("single-file template %q must contain the %s placeholder", o.SegmentSingleFileTemplate, KeyPlaceholder)
		}
	}
	if o.SegmentDuration < 0 {
		return fmt.Errorf("segment duration must not be negative")
	}
	switch o.OutputFormat {
	case "", OutputFMP4, OutputTS:
	default:
		return fmt.Errorf("unsupported output format %q", o.OutputFormat)
	}
	return nil
}

// Format returns the configured output format, defaulting to fragmented MP4.
func (o Options) Format() OutputFormat {
	if o.OutputFormat == "" {
		return OutputFMP4
	}
	return o.OutputFormat
}

// SingleFileName expands the single-file template for the given stream key.
func (o Options) SingleFileName(key string) string {
	return strings.ReplaceAll(o.SegmentSingleFileTemplate, KeyPlaceholder, key)
}
