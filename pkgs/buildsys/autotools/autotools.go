// Package autotools wraps configure-script generation and the
// configure step of autotools projects. Build and install are not
// duplicated here: a configured tree builds like a plain make project,
// so the phase driver hands off to gnumake after Configure succeeds.
package autotools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kilnbuild/kiln/pkgs/buildsys"
)

// AutoTools drives the generate/configure front half of autotools builds.
type AutoTools struct {
	runner     buildsys.Runner
	sourceDir  string
	installDir string
}

// New returns an AutoTools for sourceDir installing under installDir.
func New(r buildsys.Runner, sourceDir, installDir string) *AutoTools {
	return &AutoTools{runner: r, sourceDir: sourceDir, installDir: installDir}
}

// NeedsGenerate reports whether the configure script is missing or not
// executable and must be produced before configuring.
func (a *AutoTools) NeedsGenerate() bool {
	info, err := os.Stat(filepath.Join(a.sourceDir, "configure"))
	return err != nil || !info.Mode().IsRegular() || info.Mode()&0o111 == 0
}

// Generate produces the configure script: the project's own autogen.sh
// when it ships one, autoreconf otherwise. It is a hard failure when
// neither path is available. Generate is a no-op when configure
// already exists.
func (a *AutoTools) Generate(ctx context.Context) error {
	if !a.NeedsGenerate() {
		return nil
	}
	if isFile(filepath.Join(a.sourceDir, "autogen.sh")) {
		return a.runner.Run(ctx, a.sourceDir, "sh", "autogen.sh")
	}
	if isFile(filepath.Join(a.sourceDir, "configure.ac")) ||
		isFile(filepath.Join(a.sourceDir, "configure.in")) {
		return a.runner.Run(ctx, a.sourceDir, "autoreconf", "-i")
	}
	return fmt.Errorf("%s: configure script missing and no way to generate it", a.sourceDir)
}

// Configure runs ./configure in the source directory with --prefix
// bound to the install dir.
func (a *AutoTools) Configure(ctx context.Context, args ...string) error {
	flags := make([]string, 0, 1+len(args))
	if a.installDir != "" {
		flags = append(flags, "--prefix="+a.installDir)
	}
	return a.runner.Run(ctx, a.sourceDir, "./configure", append(flags, args...)...)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
