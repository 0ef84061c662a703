package patch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/archpatch/internal/constants"
	"github.com/wizzomafizzo/archpatch/internal/logging"
)

const defaultFileMode fs.FileMode = 0o644

// Options controls how the executor touches the filesystem.
type Options struct {
	// DryRun computes results and diffs without writing anything.
	DryRun bool
	// Backup copies a substituted file to <path>.bak before overwriting it.
	Backup bool
}

// Result reports what a rule did to its target.
type Result struct {
	Rule       string
	Path       string
	BackupPath string
	Diff       string
	Mode       Mode
	Changed    bool
}

// Executor runs rules against a filesystem.
type Executor struct {
	fs   afero.Fs
	opts Options
}

// NewExecutor creates an executor over the given filesystem
func NewExecutor(fileSystem afero.Fs, opts Options) *Executor {
	return &Executor{fs: fileSystem, opts: opts}
}

// Apply runs a single rule. Read and write errors are returned unhandled so
// the caller stops at the failing step.
func (e *Executor) Apply(ctx context.Context, rule Rule) (Result, error) {
	if err := rule.Validate(); err != nil {
		return Result{}, fmt.Errorf("rule %s validation failed: %w", rule.Name, err)
	}

	switch rule.Mode {
	case ModeAppend:
		return e.appendTo(ctx, rule)
	default:
		return e.substituteIn(ctx, rule)
	}
}

// ApplyAll runs rules in order and stops at the first error, returning the
// results of the rules that completed.
func (e *Executor) ApplyAll(ctx context.Context, rules []Rule) ([]Result, error) {
	results := make([]Result, 0, len(rules))
	for _, rule := range rules {
		result, err := e.Apply(ctx, rule)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Executor) substituteIn(ctx context.Context, rule Rule) (Result, error) {
	logger := logging.Get(ctx)
	result := Result{Rule: rule.Name, Path: rule.Path, Mode: rule.Mode}

	info, err := e.fs.Stat(rule.Path)
	if err != nil {
		return result, fmt.Errorf("failed to stat %s: %w", rule.Path, err)
	}

	before, err := afero.ReadFile(e.fs, rule.Path)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", rule.Path, err)
	}

	after, err := rule.Render(before)
	if err != nil {
		return result, err
	}

	result.Changed = string(before) != string(after)
	result.Diff = unifiedDiff(rule.Path, before, after)

	if !result.Changed {
		logger.Debug().Str("rule", rule.Name).Str("path", rule.Path).Msg("Pattern not found, file left unchanged")
		return result, nil
	}
	if e.opts.DryRun {
		return result, nil
	}

	if e.opts.Backup {
		backupPath, backupErr := e.createBackup(rule.Path, before)
		if backupErr != nil {
			return result, backupErr
		}
		result.BackupPath = backupPath
	}

	if err := afero.WriteFile(e.fs, rule.Path, after, info.Mode().Perm()); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", rule.Path, err)
	}

	logger.Info().
		Str("rule", rule.Name).
		Str("path", rule.Path).
		Int("bytes_before", len(before)).
		Int("bytes_after", len(after)).
		Msg("Substituted pattern")

	return result, nil
}

func (e *Executor) appendTo(ctx context.Context, rule Rule) (Result, error) {
	logger := logging.Get(ctx)
	result := Result{Rule: rule.Name, Path: rule.Path, Mode: rule.Mode, Changed: true}

	before, err := afero.ReadFile(e.fs, rule.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return result, fmt.Errorf("failed to read %s: %w", rule.Path, err)
	}

	chunk := rule.appendChunk(before)
	after := make([]byte, 0, len(before)+len(chunk))
	after = append(append(after, before...), chunk...)
	result.Diff = unifiedDiff(rule.Path, before, after)

	if e.opts.DryRun {
		return result, nil
	}

	file, err := e.fs.OpenFile(rule.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, defaultFileMode)
	if err != nil {
		return result, fmt.Errorf("failed to open %s for append: %w", rule.Path, err)
	}

	_, writeErr := file.Write(chunk)
	closeErr := file.Close()
	if writeErr != nil {
		return result, fmt.Errorf("failed to append to %s: %w", rule.Path, writeErr)
	}
	if closeErr != nil {
		return result, fmt.Errorf("failed to close %s: %w", rule.Path, closeErr)
	}

	logger.Info().
		Str("rule", rule.Name).
		Str("path", rule.Path).
		Int("bytes_appended", len(chunk)).
		Msg("Appended block")

	return result, nil
}

// createBackup writes a .bak copy of the original content.
func (e *Executor) createBackup(path string, data []byte) (string, error) {
	backupPath := path + constants.BackupSuffix
	if err := afero.WriteFile(e.fs, backupPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup file %s: %w", backupPath, err)
	}
	return backupPath, nil
}

func unifiedDiff(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	return udiff.Unified(path+" (current)", path+" (patched)", string(before), string(after))
}
