package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/archpatch/internal/constants"
	"github.com/wizzomafizzo/archpatch/internal/journal"
	"github.com/wizzomafizzo/archpatch/internal/testutil"
)

func init() {
	color.NoColor = true
}

func TestCreateRootCommand(t *testing.T) {
	t.Parallel()

	cmd := createNewRootCommand()

	if cmd.Use != "archpatch" {
		t.Errorf("Expected command use 'archpatch', got '%s'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Expected non-empty short description")
	}

	for _, name := range []string{"steps", "history", "config"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, strings.Fields(sub.Use)[0])
	}
}

func TestNewRootCommandHasFlags(t *testing.T) {
	t.Parallel()

	cmd := createNewRootCommand()

	for _, name := range []string{"config", "root"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	for _, name := range []string{"dry-run", "backup", "noconfirm", "interactive", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "i", cmd.Flags().Lookup("interactive").Shorthand)
}

func TestRootRejectsNonRoot(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 1000)
	testutil.SeedEtc(t, h.fs, "/")

	output, err := h.execute(t)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 255, exitErr.Code)
	assert.Equal(t, constants.NotRootMessage, exitErr.Message)
	assert.Empty(t, output)
	assert.Empty(t, h.logs.String())
	assert.Equal(t, 0, h.packages.GetCallCount())
	for path, content := range testutil.EtcFiles() {
		assert.Equal(t, content, testutil.ReadString(t, h.fs, path), path)
	}
}

func TestRootRunsFullSequence(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	testutil.SeedEtc(t, h.fs, "/")

	output, err := h.execute(t)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"INIT. Install Useful packages",
		"1. Security Correction md5 -> sha512 hash method",
		"2. Nicer shell prompt and useful aliases (system wide)",
		"3. Enables Visual Host Key Feature",
		"4. Enables Visual Options in VIM",
		"4. Screen Nice Term and Scrollback",
	}, stepLines(output))

	assert.NotContains(t, testutil.ReadString(t, h.fs, "/etc/pam.d/passwd"), "md5")
	assert.Contains(t, testutil.ReadString(t, h.fs, "/etc/ssh/ssh_config"), "\nVisualHostKey yes\n")
	require.Len(t, h.packages.Installs, 1)
	assert.NotContains(t, h.packages.Installs[0], "sudo")
	assert.Contains(t, h.logs.String(), `"run_id"`)

	runs, err := h.history.Runs(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, journal.StatusSucceeded, runs[0].Status)
}

func TestRootWithRootFlag(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	testutil.SeedEtc(t, h.fs, "/mnt")

	_, err := h.execute(t, "--root", "/mnt")
	require.NoError(t, err)

	assert.Equal(t, testutil.Vimrc+constants.VimVisual+"\n", testutil.ReadString(t, h.fs, "/mnt/etc/vimrc"))

	exists, err := afero.Exists(h.fs, "/etc/vimrc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRootMissingFileReturnsError(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	testutil.SeedEtc(t, h.fs, "/")
	require.NoError(t, h.fs.Remove("/etc/ssh/ssh_config"))

	_, err := h.execute(t)
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "step 3 failed")
}

func TestRootDryRun(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	testutil.SeedEtc(t, h.fs, "/")

	output, err := h.execute(t, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, output, "+ENCRYPT_METHOD sha512")
	assert.Empty(t, h.packages.Installs)
	assert.Equal(t, testutil.LoginDefs, testutil.ReadString(t, h.fs, "/etc/login.defs"))
}

func TestRootInteractiveDeclined(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	testutil.SeedEtc(t, h.fs, "/")
	h.answers = []string{"n"}

	output, err := h.execute(t, "-i")
	require.NoError(t, err)

	assert.Contains(t, output, "Aborted.")
	assert.Equal(t, 0, h.packages.GetCallCount())
	assert.Equal(t, testutil.PamPasswd, testutil.ReadString(t, h.fs, "/etc/pam.d/passwd"))
}

func TestRootInteractiveAccepted(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	testutil.SeedEtc(t, h.fs, "/")
	h.answers = []string{"yes"}

	output, err := h.execute(t, "--interactive")
	require.NoError(t, err)

	assert.NotContains(t, output, "Aborted.")
	assert.NotContains(t, testutil.ReadString(t, h.fs, "/etc/pam.d/passwd"), "md5")
}

func TestRootConfigFileOverridesPackages(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	testutil.SeedEtc(t, h.fs, "/")
	require.NoError(t, afero.WriteFile(h.fs, "/etc/archpatch.yml", []byte("packages: [sudo, htop]\n"), 0o600))

	output, err := h.execute(t, "--config", "/etc/archpatch.yml")
	require.NoError(t, err)

	assert.Contains(t, output, "Installing the following packages : htop\n")
	assert.Equal(t, [][]string{{"htop"}}, h.packages.Installs)
}

func TestRootBadConfigFile(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	require.NoError(t, afero.WriteFile(h.fs, "/bad.yml", []byte("steps: []\n"), 0o600))

	_, err := h.execute(t, "-c", "/bad.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config /bad.yml")
	assert.Equal(t, 0, h.packages.GetCallCount())
}

func TestRootRejectsArguments(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, 0)
	_, err := h.execute(t, "now")
	require.Error(t, err)
}
