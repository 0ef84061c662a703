package pkgmgr

import (
	"context"
	"slices"
	"sync"
)

// MockManager is an in-memory Manager for tests.
type MockManager struct {
	Installed  map[string]bool
	QueryErr   error
	InstallErr error
	Queries    []string
	Installs   [][]string
	mu         sync.Mutex
}

// NewMockManager creates a mock that reports the given packages as installed
func NewMockManager(installed ...string) *MockManager {
	m := &MockManager{Installed: make(map[string]bool)}
	for _, name := range installed {
		m.Installed[name] = true
	}
	return m
}

// IsInstalled records the query and reports from Installed.
func (m *MockManager) IsInstalled(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Queries = append(m.Queries, name)
	if m.QueryErr != nil {
		return false, m.QueryErr
	}
	return m.Installed[name], nil
}

// Install records the call and marks the names installed unless InstallErr is set.
func (m *MockManager) Install(_ context.Context, names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Installs = append(m.Installs, slices.Clone(names))
	if m.InstallErr != nil {
		return m.InstallErr
	}
	for _, name := range names {
		m.Installed[name] = true
	}
	return nil
}

// GetCallCount returns the number of queries and installs made.
func (m *MockManager) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries) + len(m.Installs)
}
