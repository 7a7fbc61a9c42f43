// Package gnumake wraps make-driven build and install steps.
// They also serve as the shared tail of autotools builds: once a
// configure script has run, the tree builds like any make project.
package gnumake

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/kilnbuild/kiln/pkgs/buildsys"
)

// installRule matches a rule definition for the install target at the
// start of a makefile line ("install:", "install : all", ...).
var installRule = regexp.MustCompile(`(?m)^install[ \t]*:`)

// Make drives make-based builds.
type Make struct {
	runner buildsys.Runner
	dir    string
	prefix string
}

// New returns a Make running in dir with the given install prefix.
func New(r buildsys.Runner, dir, prefix string) *Make {
	return &Make{runner: r, dir: dir, prefix: prefix}
}

// Build runs make with the installation prefix variable set.
func (m *Make) Build(ctx context.Context, args ...string) error {
	return m.runner.Run(ctx, m.dir, "make", m.withPrefix(args)...)
}

// Install runs the install target with the same prefix variable the
// build received.
func (m *Make) Install(ctx context.Context, args ...string) error {
	return m.runner.Run(ctx, m.dir, "make", m.withPrefix(append([]string{"install"}, args...))...)
}

// HasInstallTarget reports whether the directory's makefile declares
// an install rule. When it does not, callers skip the install phase
// and point the user at the built artifacts instead of failing.
func (m *Make) HasInstallTarget() (bool, error) {
	name, err := buildsys.MakefileName(m.dir)
	if err != nil {
		return false, err
	}
	if name == "" {
		return false, nil
	}
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		return false, err
	}
	return installRule.Match(data), nil
}

// OutputDir is the directory holding built artifacts when no install
// ran: the source tree itself.
func (m *Make) OutputDir() string { return m.dir }

func (m *Make) withPrefix(args []string) []string {
	if m.prefix == "" {
		return args
	}
	return append(args, "PREFIX="+m.prefix)
}
