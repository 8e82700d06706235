package config

import (
	"os"
	"strings"
)

// normalize expands paths, trims fields, and applies environment overrides.
func (c *Config) normalize() error {
	var err error
	if c.Paths.StagingRoot, err = expandPath(strings.TrimSpace(c.Paths.StagingRoot)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}

	c.Packager.Binary = strings.TrimSpace(c.Packager.Binary)
	if env := strings.TrimSpace(os.Getenv(EnvPackagerExecutable)); env != "" {
		c.Packager.Binary = env
	}
	c.Packager.OutputFormat = strings.ToLower(strings.TrimSpace(c.Packager.OutputFormat))

	c.S3.Binary = strings.TrimSpace(c.S3.Binary)
	c.S3.EndpointURL = strings.TrimSpace(c.S3.EndpointURL)
	if env := strings.TrimSpace(os.Getenv(EnvS3EndpointURL)); env != "" {
		c.S3.EndpointURL = env
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
