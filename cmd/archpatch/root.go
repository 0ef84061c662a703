package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/archpatch/internal/app"
	"github.com/wizzomafizzo/archpatch/internal/config"
	"github.com/wizzomafizzo/archpatch/internal/constants"
	"github.com/wizzomafizzo/archpatch/internal/logging"
	"github.com/wizzomafizzo/archpatch/internal/privilege"
	"github.com/wizzomafizzo/archpatch/internal/prompt"
)

// notRootExitCode matches exit(-1) on Linux.
const notRootExitCode = 255

// createNewRootCommand creates the main root command, which runs the patch.
func createNewRootCommand() *cobra.Command {
	return newRootCommand(defaultDeps())
}

func newRootCommand(deps *commandDeps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "archpatch",
		Short:         "Arch Linux post install patch",
		Long:          "Install useful packages and harden a fresh Arch Linux system: sha512 password hashing, a nicer prompt, SSH visual host keys, VIM and screen defaults.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPatch(cmd, deps)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file overriding the defaults")
	rootCmd.PersistentFlags().String("root", "", "Resolve every target path under this directory")

	flags := rootCmd.Flags()
	flags.Bool("dry-run", false, "Print unified diffs instead of writing and skip the package install")
	flags.Bool("backup", false, "Copy each substituted file to <file>.bak before overwriting it")
	flags.Bool("noconfirm", false, "Pass --noconfirm to pacman")
	flags.BoolP("interactive", "i", false, "Ask for confirmation before making changes")
	flags.String("log-level", "", "Log level for the log file (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		createStepsCommand(deps),
		createHistoryCommand(deps),
		createConfigCommand(deps),
	)

	return rootCmd
}

func runPatch(cmd *cobra.Command, deps *commandDeps) error {
	// Nothing may touch the system before the privilege check
	if err := deps.gate.Check(); err != nil {
		return notRootError()
	}

	cfg, err := loadConfigFromCommand(cmd, deps)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	dryRun, _ := flags.GetBool("dry-run")
	backup, _ := flags.GetBool("backup")
	interactive, _ := flags.GetBool("interactive")
	if noConfirm, _ := flags.GetBool("noconfirm"); noConfirm {
		cfg.NoConfirm = true
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	runID := uuid.NewString()
	ctx := initLogging(cmd, deps, cfg, runID)

	if interactive {
		confirmed, confirmErr := confirmRun(deps, cfg)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	opts := app.AppOptions{
		Config:   cfg,
		Fs:       deps.targetFs(cfg.Root),
		Gate:     deps.gate,
		Packages: deps.newPackages(cfg),
		Out:      cmd.OutOrStdout(),
		RunID:    runID,
		DryRun:   dryRun,
		Backup:   backup,
	}

	if history, closeHistory, journalErr := deps.openJournal(ctx); journalErr != nil {
		logging.Get(ctx).Warn().Err(journalErr).Msg("Run history unavailable")
	} else {
		defer closeHistory()
		opts.Recorder = history
	}

	err = app.NewApp(opts).Run(ctx)
	if errors.Is(err, privilege.ErrNotRoot) {
		return notRootError()
	}
	return err //nolint:wrapcheck // step errors already carry their context
}

func notRootError() error {
	return &ExitError{
		Message: constants.NotRootMessage,
		Code:    notRootExitCode,
	}
}

// loadConfigFromCommand builds the effective config from --config and --root.
func loadConfigFromCommand(cmd *cobra.Command, deps *commandDeps) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		cfg, err = config.Load(deps.hostFs, configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
	}

	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = root
	}

	return cfg, nil
}

// initLogging attaches the file logger to the command context, falling back
// to stderr when the log file cannot be created.
func initLogging(cmd *cobra.Command, deps *commandDeps, cfg *config.Config, runID string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.InfoLevel
	}

	logCtx, err := logging.New(ctx, deps.hostFs, logging.Config{
		Writer: deps.logWriter,
		RunID:  runID,
		Level:  level,
	})
	if err != nil {
		fallback := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Str("run_id", runID).Logger().Level(logging.WarnLevel)
		fallback.Warn().Err(err).Msg("Failed to open log file, logging to stderr")
		return fallback.WithContext(ctx)
	}

	return logCtx
}

func confirmRun(deps *commandDeps, cfg *config.Config) (bool, error) {
	prompter := deps.newPrompter()
	defer func() { _ = prompter.Close() }()

	question := fmt.Sprintf("Install %d packages and apply %d edits under %s?", len(cfg.Packages), len(cfg.Rules()), cfg.Root)
	confirmed, err := prompt.Confirm(prompter, question)
	if err != nil {
		return false, fmt.Errorf("failed to confirm run: %w", err)
	}
	return confirmed, nil
}
