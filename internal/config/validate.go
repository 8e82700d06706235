package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.StagingRoot == "" {
		return fmt.Errorf("paths.staging_root is required")
	}
	if c.Paths.LogDir == "" {
		return fmt.Errorf("paths.log_dir is required")
	}
	if c.Packager.Binary == "" {
		return fmt.Errorf("packager.binary is required (or set %s)", EnvPackagerExecutable)
	}
	if c.Packager.SegmentDuration < 0 {
		return fmt.Errorf("packager.segment_duration must not be negative")
	}
	switch c.Packager.OutputFormat {
	case "", "fmp4", "mp4", "ts":
	default:
		return fmt.Errorf("packager.output_format: unsupported value %q (expected fmp4 or ts)", c.Packager.OutputFormat)
	}
	if c.S3.Binary == "" {
		return fmt.Errorf("s3.binary is required")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
