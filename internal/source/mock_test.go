package source

import "context"

// mockVCS implements vcs.VCS for unit testing.
type mockVCS struct {
	syncFunc func(ctx context.Context, remote, ref, dir string) error
}

func (m *mockVCS) Sync(ctx context.Context, remote, ref, dir string) error {
	if m.syncFunc != nil {
		return m.syncFunc(ctx, remote, ref, dir)
	}
	return nil
}
