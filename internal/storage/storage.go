// Package storage provides XDG-compliant storage path management for archpatch.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/archpatch/internal/constants"
)

// AppName is the application name used for XDG directory paths
const AppName = constants.AppName

// Manager handles storage operations with filesystem abstraction
type Manager struct {
	fs afero.Fs
}

// New creates a new storage manager with the given filesystem
func New(fs afero.Fs) *Manager {
	return &Manager{fs: fs}
}

// GetDataDir returns the XDG data directory for archpatch, creating it if necessary
func (m *Manager) GetDataDir() (string, error) {
	return m.ensureDir(filepath.Join(xdg.DataHome, AppName), "data")
}

// GetStateDir returns the XDG state directory for archpatch, creating it if necessary
func (m *Manager) GetStateDir() (string, error) {
	return m.ensureDir(filepath.Join(xdg.StateHome, AppName), "state")
}

// GetLogPath returns the full path to the archpatch log file
func (m *Manager) GetLogPath() (string, error) {
	stateDir, err := m.GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, constants.LogFilename), nil
}

// GetHistoryPath returns the full path to the run journal database
func (m *Manager) GetHistoryPath() (string, error) {
	dataDir, err := m.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, constants.HistoryFilename), nil
}

func (m *Manager) ensureDir(dir, kind string) (string, error) {
	if err := m.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s directory %s: %w", kind, dir, err)
	}
	return dir, nil
}
