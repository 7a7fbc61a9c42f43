package build

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/kilnbuild/kiln/pkgs/buildsys"
	"github.com/kilnbuild/kiln/pkgs/buildsys/autotools"
	"github.com/kilnbuild/kiln/pkgs/buildsys/cmake"
	"github.com/kilnbuild/kiln/pkgs/buildsys/gnumake"
)

// Context carries the per-invocation inputs the phase driver reads.
// It is created once by the orchestrator and never mutated.
type Context struct {
	Dir     string // resolved project root
	Prefix  string // normalized installation prefix
	Verbose bool
}

// A Driver sequences the configure/build/install phases of one
// classified project. Phases run strictly in order; the first failure
// aborts the remainder.
type Driver struct {
	runner buildsys.Runner
}

// NewDriver returns a Driver executing tools through r.
func NewDriver(r buildsys.Runner) *Driver {
	return &Driver{runner: r}
}

// Result aggregates a finished or aborted phase sequence.
type Result struct {
	Kind      buildsys.Kind
	Prefix    string
	OutputDir string
	Phases    []PhaseResult

	// InstallSkipped is set when a make project has no install target;
	// the build still counts as a success and OutputDir names the
	// directory holding the artifacts.
	InstallSkipped bool
}

// Run executes the phase sequence for kind. kind must not be Unknown:
// classification failure aborts the invocation before the driver is
// reached.
func (d *Driver) Run(ctx context.Context, kind buildsys.Kind, bctx *Context) (*Result, error) {
	res := &Result{Kind: kind, Prefix: bctx.Prefix, OutputDir: bctx.Prefix}

	var err error
	switch kind {
	case buildsys.CMake:
		err = d.runCMake(ctx, bctx, res)
	case buildsys.Autotools:
		err = d.runAutotools(ctx, bctx, res)
	case buildsys.Make:
		err = d.makePhases(ctx, bctx, res)
	default:
		return nil, fmt.Errorf("build: cannot drive %s build system", kind)
	}
	if err != nil {
		return res, err
	}
	return res, nil
}

func (d *Driver) runCMake(ctx context.Context, bctx *Context, res *Result) error {
	cm := cmake.New(d.runner, bctx.Dir, filepath.Join(bctx.Dir, "build"), bctx.Prefix)
	if err := d.phase(res, PhaseConfigure, func() error { return cm.Configure(ctx) }); err != nil {
		return err
	}
	if err := d.phase(res, PhaseBuild, func() error { return cm.Build(ctx) }); err != nil {
		return err
	}
	return d.phase(res, PhaseInstall, func() error { return cm.Install(ctx) })
}

func (d *Driver) runAutotools(ctx context.Context, bctx *Context, res *Result) error {
	at := autotools.New(d.runner, bctx.Dir, bctx.Prefix)
	if at.NeedsGenerate() {
		if err := d.phase(res, PhaseGenerate, func() error { return at.Generate(ctx) }); err != nil {
			return err
		}
	}
	if err := d.phase(res, PhaseConfigure, func() error { return at.Configure(ctx) }); err != nil {
		return err
	}
	// A configured autotools tree builds exactly like a plain make
	// project; no re-classification happens here.
	return d.makePhases(ctx, bctx, res)
}

// makePhases is the shared build/install tail for make projects and
// configured autotools projects. Both receive the same commands with
// the same prefix variable.
func (d *Driver) makePhases(ctx context.Context, bctx *Context, res *Result) error {
	m := gnumake.New(d.runner, bctx.Dir, bctx.Prefix)
	if err := d.phase(res, PhaseBuild, func() error { return m.Build(ctx) }); err != nil {
		return err
	}

	hasInstall, err := m.HasInstallTarget()
	if err != nil {
		return d.fail(res, PhaseInstall, err)
	}
	if !hasInstall {
		res.InstallSkipped = true
		res.OutputDir = m.OutputDir()
		res.Phases = append(res.Phases, PhaseResult{
			Phase:   PhaseInstall,
			Status:  Skipped,
			Message: fmt.Sprintf("no install target; built artifacts are in %s", m.OutputDir()),
		})
		log.Warnf("make: no install target, leaving built artifacts in %s", m.OutputDir())
		return nil
	}
	return d.phase(res, PhaseInstall, func() error { return m.Install(ctx) })
}

func (d *Driver) phase(res *Result, p Phase, fn func() error) error {
	log.Infof("%s...", p)
	if err := fn(); err != nil {
		return d.fail(res, p, err)
	}
	res.Phases = append(res.Phases, PhaseResult{Phase: p, Status: Succeeded})
	return nil
}

func (d *Driver) fail(res *Result, p Phase, err error) error {
	res.Phases = append(res.Phases, PhaseResult{Phase: p, Status: Failed, Message: err.Error()})
	return &PhaseError{Phase: p, Err: err}
}
