// Package app runs the archpatch sequence: privilege gate, package install,
// then every configured patch step in order.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/archpatch/internal/config"
	"github.com/wizzomafizzo/archpatch/internal/constants"
	"github.com/wizzomafizzo/archpatch/internal/journal"
	"github.com/wizzomafizzo/archpatch/internal/logging"
	"github.com/wizzomafizzo/archpatch/internal/patch"
	"github.com/wizzomafizzo/archpatch/internal/pkgmgr"
)

// Gate decides whether the process may modify the system.
type Gate interface {
	Check() error
}

// Recorder keeps a history of runs. A nil Recorder records nothing.
type Recorder interface {
	Start(ctx context.Context, id, root string, dryRun bool) (journal.Run, error)
	RecordStep(ctx context.Context, runID string, step journal.StepRecord) error
	Finish(ctx context.Context, runID string, runErr error) error
}

// AppOptions contains the dependencies of an App
type AppOptions struct {
	Config   *config.Config
	Fs       afero.Fs
	Gate     Gate
	Packages pkgmgr.Manager
	Recorder Recorder
	Out      io.Writer
	RunID    string
	DryRun   bool
	Backup   bool
}

// App is the linear patch driver.
type App struct {
	config   *config.Config
	gate     Gate
	packages pkgmgr.Manager
	recorder Recorder
	executor *patch.Executor
	out      io.Writer
	heading  *color.Color
	runID    string
	dryRun   bool
}

// NewApp creates an App from its options
func NewApp(opts AppOptions) *App {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &App{
		config:   cfg,
		gate:     opts.Gate,
		packages: opts.Packages,
		recorder: opts.Recorder,
		executor: patch.NewExecutor(opts.Fs, patch.Options{DryRun: opts.DryRun, Backup: opts.Backup}),
		out:      out,
		heading:  color.New(color.Bold),
		runID:    opts.RunID,
		dryRun:   opts.DryRun,
	}
}

// Run executes the whole sequence. The privilege gate runs before anything
// else; a file error stops the run at the failing step and leaves earlier
// steps applied. Package manager failures are logged and otherwise ignored.
func (a *App) Run(ctx context.Context) error {
	if a.gate != nil {
		if err := a.gate.Check(); err != nil {
			return err //nolint:wrapcheck // sentinel is matched by the caller
		}
	}

	runID := a.startRun(ctx)

	a.printf("%s\n", constants.Banner)

	a.printHeading(constants.LabelInit, constants.TitleInit)
	a.installPackages(ctx)

	err := a.applySteps(ctx, runID)
	a.finishRun(ctx, runID, err)
	return err
}

func (a *App) installPackages(ctx context.Context) {
	logger := logging.Get(ctx)

	if a.packages == nil {
		logger.Warn().Msg("No package manager configured, skipping package install")
		return
	}

	installed, missing := pkgmgr.Partition(ctx, a.packages, a.config.Packages)
	a.printf("%s%s\n", constants.InstallingPackages, strings.Join(missing, " "))

	logger.Info().
		Strs("installed", installed).
		Strs("missing", missing).
		Bool("dry_run", a.dryRun).
		Msg("Package status")

	if a.dryRun || len(missing) == 0 {
		return
	}

	if err := a.packages.Install(ctx, missing); err != nil {
		logger.Warn().Err(err).Strs("packages", missing).Msg("Package install failed, continuing")
	}
}

func (a *App) applySteps(ctx context.Context, runID string) error {
	for _, step := range a.config.Steps {
		a.printHeading(step.Label, step.Title)

		results, err := a.executor.ApplyAll(ctx, step.Rules)
		for _, result := range results {
			a.recordStep(ctx, runID, step.Label, result)
			if a.dryRun && result.Diff != "" {
				a.printf("%s", result.Diff)
			}
		}
		if err != nil {
			logging.Get(ctx).Error().Err(err).Str("step", step.Label).Msg("Step failed")
			return fmt.Errorf("step %s failed: %w", step.Label, err)
		}
	}
	return nil
}

func (a *App) printHeading(label, title string) {
	_, _ = a.heading.Fprintf(a.out, "%s. %s", label, title)
	a.printf("\n")
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) startRun(ctx context.Context) string {
	if a.recorder == nil {
		return ""
	}
	run, err := a.recorder.Start(ctx, a.runID, a.config.Root, a.dryRun)
	if err != nil {
		logging.Get(ctx).Warn().Err(err).Msg("Failed to record run start")
		return ""
	}
	return run.ID
}

func (a *App) recordStep(ctx context.Context, runID, label string, result patch.Result) {
	if a.recorder == nil || runID == "" {
		return
	}
	err := a.recorder.RecordStep(ctx, runID, journal.StepRecord{
		Label:   label,
		Rule:    result.Rule,
		Path:    result.Path,
		Changed: result.Changed,
	})
	if err != nil {
		logging.Get(ctx).Warn().Err(err).Str("rule", result.Rule).Msg("Failed to record step")
	}
}

func (a *App) finishRun(ctx context.Context, runID string, runErr error) {
	if a.recorder == nil || runID == "" {
		return
	}
	if err := a.recorder.Finish(ctx, runID, runErr); err != nil {
		logging.Get(ctx).Warn().Err(err).Msg("Failed to record run finish")
	}
}
