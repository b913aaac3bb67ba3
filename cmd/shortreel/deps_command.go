package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shortreel/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external binaries the pipeline needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Required(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Status"}, rows, nil))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required binaries missing", len(missing))
			}
			return nil
		},
	}
}
