package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

// createHistoryCommand creates the history command.
func createHistoryCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show previous runs, or the steps of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, closeHistory, err := deps.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer closeHistory()

			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer func() { _ = out.Flush() }()

			if len(args) == 1 {
				steps, stepsErr := history.Steps(cmd.Context(), args[0])
				if stepsErr != nil {
					return fmt.Errorf("failed to load run %s: %w", args[0], stepsErr)
				}
				_, _ = fmt.Fprintln(out, "STEP\tRULE\tPATH\tCHANGED")
				for _, step := range steps {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%t\n", step.Label, step.Rule, step.Path, step.Changed)
				}
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := history.Runs(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			_, _ = fmt.Fprintln(out, "STARTED\tSTATUS\tDRY-RUN\tROOT\tID")
			for _, run := range runs {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%t\t%s\t%s\n",
					run.StartedAt.Local().Format(time.DateTime), run.Status, run.DryRun, run.Root, run.ID)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", defaultHistoryLimit, "Maximum number of runs to show")
	return cmd
}
