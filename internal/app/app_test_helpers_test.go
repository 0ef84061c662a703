package app

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/archpatch/internal/config"
	"github.com/wizzomafizzo/archpatch/internal/pkgmgr"
	"github.com/wizzomafizzo/archpatch/internal/privilege"
	"github.com/wizzomafizzo/archpatch/internal/testutil"
)

type testEnv struct {
	fs       afero.Fs
	packages *pkgmgr.MockManager
	out      *bytes.Buffer
}

// newTestEnv seeds a stub /etc tree and a package manager reporting sudo and
// vim as installed.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	testutil.SeedEtc(t, fs, "/")

	return &testEnv{
		fs:       fs,
		packages: pkgmgr.NewMockManager("sudo", "vim"),
		out:      &bytes.Buffer{},
	}
}

func (e *testEnv) newApp(uid int, mutate func(*AppOptions)) *App {
	opts := AppOptions{
		Config:   config.DefaultConfig(),
		Fs:       e.fs,
		Gate:     privilege.NewGateWithUID(func() int { return uid }),
		Packages: e.packages,
		Out:      e.out,
	}
	if mutate != nil {
		mutate(&opts)
	}

	a := NewApp(opts)
	a.heading.DisableColor()
	return a
}

var stepLabelRe = regexp.MustCompile(`^(\S+)\. `)

// printedLabels returns the step labels in the order they were printed.
func printedLabels(output string) []string {
	var labels []string
	for _, line := range strings.Split(output, "\n") {
		if m := stepLabelRe.FindStringSubmatch(line); m != nil {
			labels = append(labels, m[1])
		}
	}
	return labels
}
