// Package pkgmgr wraps the system package manager behind a narrow interface.
package pkgmgr

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner executes external commands. It exists so the package manager can be
// faked in tests.
type Runner interface {
	// Run executes a command with its output discarded.
	Run(ctx context.Context, name string, args ...string) error
	// RunInteractive executes a command attached to the terminal.
	RunInteractive(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner bound to the process standard streams
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes name with args, discarding its output.
func (*ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed binary, package names from config
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() //nolint:wrapcheck // exit status is inspected by the caller
}

// RunInteractive executes name with args attached to the runner's streams.
func (r *ExecRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed binary, package names from config
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run() //nolint:wrapcheck // exit status is inspected by the caller
}
