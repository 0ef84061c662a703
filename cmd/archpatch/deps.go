package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/archpatch/internal/app"
	"github.com/wizzomafizzo/archpatch/internal/config"
	"github.com/wizzomafizzo/archpatch/internal/database"
	"github.com/wizzomafizzo/archpatch/internal/journal"
	"github.com/wizzomafizzo/archpatch/internal/pkgmgr"
	"github.com/wizzomafizzo/archpatch/internal/privilege"
	"github.com/wizzomafizzo/archpatch/internal/prompt"
	"github.com/wizzomafizzo/archpatch/internal/storage"
)

// commandDeps holds everything the commands touch outside the process, so
// tests can swap in memory filesystems and fakes.
type commandDeps struct {
	// hostFs holds the config file, the log and the journal database.
	hostFs      afero.Fs
	targetFs    func(root string) afero.Fs
	gate        app.Gate
	newPackages func(cfg *config.Config) pkgmgr.Manager
	openJournal func(ctx context.Context) (*journal.Journal, func(), error)
	newPrompter func() prompt.Prompter
	// logWriter replaces the rotating log file when set.
	logWriter io.Writer
}

func defaultDeps() *commandDeps {
	hostFs := afero.NewOsFs()
	return &commandDeps{
		hostFs:   hostFs,
		targetFs: func(root string) afero.Fs { return rootedFs(hostFs, root) },
		gate:     privilege.NewGate(),
		newPackages: func(cfg *config.Config) pkgmgr.Manager {
			return pkgmgr.NewPacman(pkgmgr.NewExecRunner(), pkgmgr.WithNoConfirm(cfg.NoConfirm))
		},
		openJournal: func(ctx context.Context) (*journal.Journal, func(), error) {
			return openJournal(ctx, hostFs)
		},
		newPrompter: prompt.NewLinerPrompter,
	}
}

// rootedFs resolves absolute target paths under root.
func rootedFs(base afero.Fs, root string) afero.Fs {
	if root == "" || filepath.Clean(root) == "/" {
		return base
	}
	return afero.NewBasePathFs(base, root)
}

func openJournal(ctx context.Context, fs afero.Fs) (*journal.Journal, func(), error) {
	path, err := storage.New(fs).GetHistoryPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get history path: %w", err)
	}

	dbManager, err := database.NewManager(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}

	return journal.New(dbManager.DB()), func() { _ = dbManager.Close() }, nil
}
