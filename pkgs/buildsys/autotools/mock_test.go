package autotools

import "context"

// fakeRunner records each command instead of executing it.
type fakeRunner struct {
	calls [][]string
	dirs  []string
	err   error
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	f.dirs = append(f.dirs, dir)
	return f.err
}
