package main

import (
	"os"

	"github.com/spf13/cobra"

	"abrpack/internal/logging"
	"abrpack/internal/packrun"
)

// EnvBearerToken carries the credential attached to HTTP(S) input fetches.
const EnvBearerToken = "ABRPACK_BEARER_TOKEN"

type packFlags struct {
	inputs             []string
	sourceRoot         string
	stagingDir         string
	packagerPath       string
	noImplicitAudio    bool
	s3EndpointURL      string
	dashOnly           bool
	hlsOnly            bool
	segmentSingleFile  bool
	singleFileTemplate string
	segmentDuration    int
	outputFormat       string
}

func (f *packFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.inputs, "input", "i", nil,
		"Input stream as [a|v|t]:<key>=<filename>[:label] (repeatable)")
	cmd.Flags().StringVarP(&f.sourceRoot, "source", "s", "", "Source root prefixed to unqualified input filenames")
	cmd.Flags().StringVar(&f.stagingDir, "staging-dir", "", "Root for the per-run staging directory")
	cmd.Flags().StringVar(&f.packagerPath, "packager", "", "Path to the Shaka Packager executable")
	cmd.Flags().BoolVar(&f.noImplicitAudio, "no-implicit-audio", false, "Do not derive an audio stream from the first video input")
	cmd.Flags().StringVar(&f.s3EndpointURL, "s3-endpoint-url", "", "Non-default endpoint for s3:// transfers")
	cmd.Flags().BoolVar(&f.dashOnly, "dash-only", false, "Emit only the DASH manifest")
	cmd.Flags().BoolVar(&f.hlsOnly, "hls-only", false, "Emit only the HLS playlists")
	cmd.Flags().BoolVar(&f.segmentSingleFile, "segment-single-file", false, "Write one output file per stream, addressed by byte range")
	cmd.Flags().StringVar(&f.singleFileTemplate, "segment-single-file-template", "",
		"Filename template for single-file output; must contain $KEY$")
	cmd.Flags().IntVar(&f.segmentDuration, "segment-duration", 0, "Target segment duration in seconds")
	cmd.Flags().StringVar(&f.outputFormat, "output-format", "", "Output container: fmp4 or ts")
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)
	flags := &packFlags{}

	rootCmd := &cobra.Command{
		Use:           "abrpack [flags] <destination>",
		Short:         "Package ABR bundles with Shaka Packager",
		Long: "abrpack fetches independent audio/video/subtitle streams, drives Shaka\n" +
			"Packager to produce a DASH + HLS package, and publishes the result to a\n" +
			"directory or object storage.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := buildRequest(cfg, flags, args[0])
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				LogDir: cfg.Paths.LogDir,
			})
			if err != nil {
				return err
			}
			runner := packrun.New(
				packrun.WithLogger(logger),
				packrun.WithHistoryDB(cfg.HistoryDBPath()),
			)
			return runner.Run(cmd.Context(), req)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.register(rootCmd)

	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))
	rootCmd.AddCommand(newStagingCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func bearerTokenFromEnv() string {
	return os.Getenv(EnvBearerToken)
}
