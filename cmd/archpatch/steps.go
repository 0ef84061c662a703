package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/archpatch/internal/constants"
	"github.com/wizzomafizzo/archpatch/internal/patch"
)

// createStepsCommand creates the steps command.
func createStepsCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the patch steps and the files they touch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfigFromCommand(cmd, deps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s. %s (%d packages)\n", constants.LabelInit, constants.TitleInit, len(cfg.Packages))
			for _, step := range cfg.Steps {
				_, _ = fmt.Fprintf(out, "%s. %s\n", step.Label, step.Title)
				for _, rule := range step.Rules {
					_, _ = fmt.Fprintf(out, "   %-10s %s\n", describeMode(rule), rule.Path)
				}
			}
			return nil
		},
	}
}

func describeMode(rule patch.Rule) string {
	if rule.Mode == patch.ModeSubstitute && rule.Occurrence == patch.OccurrenceFirst {
		return "replace"
	}
	if rule.Mode == patch.ModeSubstitute {
		return "replace-all"
	}
	return string(rule.Mode)
}
