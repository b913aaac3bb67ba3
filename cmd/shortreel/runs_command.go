package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shortreel/internal/queue"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs and their outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := queue.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			headers := []string{"Created", "Name", "Status", "Scenes", "Output / Error"}
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				detail := record.OutputPath
				if record.Status == queue.StatusFailed {
					detail = record.ErrorMessage
				}
				rows = append(rows, []string{
					record.CreatedAt.Local().Format(time.DateTime),
					record.Name,
					string(record.Status),
					strconv.Itoa(record.SceneCount),
					detail,
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}
