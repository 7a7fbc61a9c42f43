package build

import "context"

// fakeRunner records each command instead of executing it. failOn
// lets a test fail a specific invocation.
type fakeRunner struct {
	calls  [][]string
	dirs   []string
	failOn func(name string, args []string) error
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	f.dirs = append(f.dirs, dir)
	if f.failOn != nil {
		return f.failOn(name, args)
	}
	return nil
}
