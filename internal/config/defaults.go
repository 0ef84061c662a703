package config

import (
	"fmt"

	"github.com/wizzomafizzo/archpatch/internal/constants"
	"github.com/wizzomafizzo/archpatch/internal/patch"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default archpatch configuration
func DefaultConfig() *Config {
	return &Config{
		Root:     "/",
		Packages: constants.DefaultPackages(),
		Steps: []Step{
			{
				Label: constants.LabelHash,
				Title: constants.TitleHash,
				Rules: []patch.Rule{
					{
						Name:        "pam-sha512",
						Path:        constants.PamPasswdPath,
						Mode:        patch.ModeSubstitute,
						Pattern:     constants.MD5Pattern,
						Replacement: constants.SHA512Replacement,
						Occurrence:  patch.OccurrenceAll,
					},
					{
						Name:        "login-defs-encrypt-method",
						Path:        constants.LoginDefsPath,
						Mode:        patch.ModeAppend,
						Replacement: constants.EncryptMethodSHA512,
					},
				},
			},
			{
				Label: constants.LabelPrompt,
				Title: constants.TitlePrompt,
				Rules: []patch.Rule{
					{
						Name:        "bash-prompt",
						Path:        constants.BashrcPath,
						Mode:        patch.ModeSubstitute,
						Pattern:     constants.PromptPattern,
						Replacement: constants.BetterPrompt,
						Occurrence:  patch.OccurrenceFirst,
					},
				},
			},
			{
				Label: constants.LabelSSH,
				Title: constants.TitleSSH,
				Rules: []patch.Rule{
					{
						Name:        "ssh-visual-hostkey",
						Path:        constants.SSHConfigPath,
						Mode:        patch.ModeSubstitute,
						Pattern:     constants.VisualHostKeyDefault,
						Replacement: constants.VisualHostKeyOn,
						Occurrence:  patch.OccurrenceFirst,
					},
				},
			},
			{
				Label: constants.LabelVim,
				Title: constants.TitleVim,
				Rules: []patch.Rule{
					{
						Name:        "vim-visual",
						Path:        constants.VimrcPath,
						Mode:        patch.ModeAppend,
						Replacement: constants.VimVisual,
					},
				},
			},
			{
				Label: constants.LabelScreen,
				Title: constants.TitleScreen,
				Rules: []patch.Rule{
					{
						Name:        "screen-visual",
						Path:        constants.ScreenrcPath,
						Mode:        patch.ModeAppend,
						Replacement: constants.ScreenVisual,
					},
				},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultConfigYAML returns the default configuration as YAML bytes
func DefaultConfigYAML() ([]byte, error) {
	config := DefaultConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config to YAML: %w", err)
	}
	return data, nil
}
