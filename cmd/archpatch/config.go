package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/archpatch/internal/config"
	"gopkg.in/yaml.v3"
)

// createConfigCommand creates the config command.
func createConfigCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := effectiveConfigYAML(cmd, deps)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			if err != nil {
				return fmt.Errorf("failed to print config: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Bool("defaults", false, "Print the built-in defaults, ignoring --config and --root")
	return cmd
}

func effectiveConfigYAML(cmd *cobra.Command, deps *commandDeps) ([]byte, error) {
	if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
		data, err := config.DefaultConfigYAML()
		if err != nil {
			return nil, fmt.Errorf("failed to render defaults: %w", err)
		}
		return data, nil
	}

	cfg, err := loadConfigFromCommand(cmd, deps)
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
