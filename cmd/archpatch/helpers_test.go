package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/archpatch/internal/config"
	"github.com/wizzomafizzo/archpatch/internal/database"
	"github.com/wizzomafizzo/archpatch/internal/journal"
	"github.com/wizzomafizzo/archpatch/internal/pkgmgr"
	"github.com/wizzomafizzo/archpatch/internal/privilege"
	"github.com/wizzomafizzo/archpatch/internal/prompt"
)

type testHarness struct {
	deps     *commandDeps
	fs       afero.Fs
	packages *pkgmgr.MockManager
	history  *journal.Journal
	logs     *bytes.Buffer
	answers  []string
}

// answerPrompter replies to Prompt with queued answers
type answerPrompter struct {
	h *testHarness
}

func (p *answerPrompter) Prompt(string) (string, error) {
	answer := p.h.answers[0]
	p.h.answers = p.h.answers[1:]
	return answer, nil
}

func (*answerPrompter) Close() error { return nil }

func newTestHarness(t *testing.T, uid int) *testHarness {
	t.Helper()

	dbManager, err := database.NewManager(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbManager.Close() })

	h := &testHarness{
		fs:       afero.NewMemMapFs(),
		packages: pkgmgr.NewMockManager("sudo"),
		history:  journal.New(dbManager.DB()),
		logs:     &bytes.Buffer{},
	}

	h.deps = &commandDeps{
		hostFs:   h.fs,
		targetFs: func(root string) afero.Fs { return rootedFs(h.fs, root) },
		gate:     privilege.NewGateWithUID(func() int { return uid }),
		newPackages: func(*config.Config) pkgmgr.Manager {
			return h.packages
		},
		openJournal: func(context.Context) (*journal.Journal, func(), error) {
			return h.history, func() {}, nil
		},
		newPrompter: func() prompt.Prompter { return &answerPrompter{h: h} },
		logWriter:   h.logs,
	}
	return h
}

// execute runs the root command with args and returns its stdout.
func (h *testHarness) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(h.deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func stepLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if len(line) > 2 && strings.Contains(line, ". ") && !strings.HasPrefix(line, " ") &&
			!strings.HasPrefix(line, "Installing") && !strings.HasPrefix(line, "===") {
			lines = append(lines, line)
		}
	}
	return lines
}
