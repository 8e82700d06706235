package config

const (
	defaultStagingRoot  = "~/.local/share/abrpack/staging"
	defaultLogDir       = "~/.local/share/abrpack/logs"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultOutputFormat = "fmp4"

	// Environment variables that override the file-based settings.
	EnvPackagerExecutable = "PACKAGER_EXECUTABLE"
	EnvS3EndpointURL      = "S3_ENDPOINT_URL"
)

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingRoot: defaultStagingRoot,
			LogDir:      defaultLogDir,
		},
		Packager: Packager{
			Binary:       "packager",
			OutputFormat: defaultOutputFormat,
		},
		S3: S3{
			Binary: "aws",
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
