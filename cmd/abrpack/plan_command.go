package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"abrpack/internal/packrun"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	flags := &packFlags{}

	cmd := &cobra.Command{
		Use:   "plan [flags] <destination>",
		Short: "Show the resolved inputs and packager arguments without running anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := buildRequest(cfg, flags, args[0])
			if err != nil {
				return err
			}
			locations, packagerArgs, err := packrun.Plan(req)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(req.Inputs))
			for i, input := range req.Inputs {
				rows = append(rows, []string{string(input.Kind), input.Key, locations[i], input.Label})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "Key", "Location", "Label"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			fmt.Fprintf(out, "\n%s", req.PackagerBinary)
			for _, arg := range packagerArgs {
				fmt.Fprintf(out, " \\\n    %s", arg)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
