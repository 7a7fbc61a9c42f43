// Package build orchestrates the acquire/classify/build lifecycle and
// drives the per-build-system phase sequence.
package build

import (
	"context"
	"os"

	"github.com/qiniu/x/log"

	"github.com/kilnbuild/kiln/internal/env"
	"github.com/kilnbuild/kiln/internal/source"
	"github.com/kilnbuild/kiln/pkgs/buildsys"
)

// Options configures a single Build invocation.
type Options struct {
	// Reference names the repository: owner/repo shorthand, a clone
	// URL, or a local directory path.
	Reference string

	// Prefix overrides the installation prefix; empty selects the
	// default. A leading "~" is expanded.
	Prefix string

	// Verbose streams the underlying tool output.
	Verbose bool

	// Runner overrides the command runner. Nil selects ExecRunner.
	Runner buildsys.Runner
	// SourceOptions are passed through to source.Resolve.
	SourceOptions []source.Option
}

// Build acquires the referenced repository, classifies its build
// system, and runs the full phase sequence against the installation
// prefix. The first failure aborts and is returned; on success the
// Result describes what ran.
func Build(ctx context.Context, opts Options) (*Result, error) {
	src, err := source.Resolve(opts.Reference, opts.SourceOptions...)
	if err != nil {
		return nil, err
	}

	if !src.IsLocal() {
		log.Infof("fetching %s", src.Remote)
	}
	dir, err := src.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	prefix := env.ExpandPrefix(opts.Prefix, home)

	kind, err := buildsys.Detect(dir)
	if err != nil {
		return nil, err
	}
	log.Infof("detected %s project in %s", kind, dir)

	runner := opts.Runner
	if runner == nil {
		runner = &buildsys.ExecRunner{Verbose: opts.Verbose}
	}
	bctx := &Context{Dir: dir, Prefix: prefix, Verbose: opts.Verbose}
	return NewDriver(runner).Run(ctx, kind, bctx)
}
