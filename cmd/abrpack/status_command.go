package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"abrpack/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tool availability and staging space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries([]deps.Requirement{
				{
					Name:        "Shaka Packager",
					Command:     cfg.Packager.Binary,
					Description: "Performs segmenting and manifest generation",
				},
				{
					Name:        "AWS CLI",
					Command:     cfg.S3.Binary,
					Description: "Transfers s3:// sources and destinations",
					Optional:    true,
				},
			})
			statuses = append(statuses, deps.CheckStagingRoot(cfg.Paths.StagingRoot))

			rows := make([][]string, 0, len(statuses))
			failed := false
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if !status.Optional {
						failed = true
					}
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "State", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if failed {
				return fmt.Errorf("required dependencies are missing")
			}
			return nil
		},
	}
}
