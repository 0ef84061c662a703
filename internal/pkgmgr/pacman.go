package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/wizzomafizzo/archpatch/internal/constants"
	"github.com/wizzomafizzo/archpatch/internal/logging"
)

// Manager queries and installs packages.
type Manager interface {
	IsInstalled(ctx context.Context, name string) (bool, error)
	Install(ctx context.Context, names []string) error
}

// Pacman implements Manager with the Arch Linux package manager.
type Pacman struct {
	runner    Runner
	binary    string
	noConfirm bool
}

// PacmanOption configures a Pacman manager.
type PacmanOption func(*Pacman)

// WithNoConfirm passes --noconfirm to the install invocation.
func WithNoConfirm(noConfirm bool) PacmanOption {
	return func(p *Pacman) {
		p.noConfirm = noConfirm
	}
}

// WithBinary overrides the pacman executable.
func WithBinary(binary string) PacmanOption {
	return func(p *Pacman) {
		p.binary = binary
	}
}

// NewPacman creates a pacman-backed manager
func NewPacman(runner Runner, opts ...PacmanOption) *Pacman {
	p := &Pacman{runner: runner, binary: constants.PacmanBinary}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsInstalled runs "pacman -Q name". Exit status 0 means installed, any
// other exit status means not installed. Failing to start pacman at all is
// returned as an error.
func (p *Pacman) IsInstalled(ctx context.Context, name string) (bool, error) {
	err := p.runner.Run(ctx, p.binary, "-Q", name)
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("failed to query package %s: %w", name, err)
}

// Install runs "pacman -S" once with every name as its own argument. An
// empty set runs nothing.
func (p *Pacman) Install(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	args := make([]string, 0, len(names)+2)
	args = append(args, "-S")
	if p.noConfirm {
		args = append(args, "--noconfirm")
	}
	args = append(args, names...)

	logging.Get(ctx).Debug().
		Str("binary", p.binary).
		Strs("args", args).
		Msg("Running package install")

	if err := p.runner.RunInteractive(ctx, p.binary, args...); err != nil {
		return fmt.Errorf("failed to install packages: %w", err)
	}
	return nil
}
