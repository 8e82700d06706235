package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"abrpack/internal/logging"
	"abrpack/internal/staging"
)

func newStagingCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staging",
		Short: "Manage the staging directory tree",
	}
	cmd.AddCommand(newStagingCleanCommand(ctx))
	return cmd
}

func newStagingCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove staging directories left behind by old runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}
			result, err := staging.CleanStale(cmd.Context(), cfg.Paths.StagingRoot, maxAge, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			noun := "directories"
			if len(result.Removed) == 1 {
				noun = "directory"
			}
			fmt.Fprintf(out, "Removed %d staging %s.\n", len(result.Removed), noun)
			for _, cleanupErr := range result.Errors {
				fmt.Fprintf(out, "failed to remove %s: %v\n", cleanupErr.Path, cleanupErr.Error)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&maxAge, "max-age", 24*time.Hour, "Remove run directories older than this")
	return cmd
}
