// Package source resolves repository references and materializes them
// as working directories.
//
// A reference is one of:
//   - an "owner/repo" GitHub shorthand, optionally with an "@ref" suffix
//   - a full clone URL (https://, git://, ssh:// or git@host:path)
//   - a local directory path
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/module"

	"github.com/kilnbuild/kiln/internal/env"
	"github.com/kilnbuild/kiln/internal/lockedfile"
	"github.com/kilnbuild/kiln/internal/vcs"
)

// ErrInvalidReference reports a repository reference that is neither a
// local directory, a clone URL, nor an owner/repo shorthand.
var ErrInvalidReference = errors.New("invalid repository reference")

// A Source is a resolved repository reference, ready to be acquired.
type Source struct {
	// Reference is the raw argument as the user supplied it.
	Reference string

	// Local is the directory path for local references; empty otherwise.
	Local string

	// Remote is the clone URL for remote references.
	Remote string
	// Ref is the revision to check out; empty selects the default branch head.
	Ref string
	// Name is the "owner/repo"-style key used for cache placement.
	Name string

	vcs     vcs.VCS
	workDir string
}

// IsLocal reports whether the source points at a directory on disk.
func (s *Source) IsLocal() bool { return s.Local != "" }

// Option configures Resolve.
type Option func(*Source)

// WithVCS overrides the version control backend.
func WithVCS(v vcs.VCS) Option {
	return func(s *Source) { s.vcs = v }
}

// WithWorkDir overrides the clone cache root.
func WithWorkDir(dir string) Option {
	return func(s *Source) { s.workDir = dir }
}

// Resolve classifies reference into a local or remote Source.
// It performs no I/O beyond checking whether the reference names an
// existing directory; acquisition failures surface from Acquire.
func Resolve(reference string, opts ...Option) (*Source, error) {
	s := &Source{Reference: reference}
	for _, opt := range opts {
		opt(s)
	}
	if s.vcs == nil {
		s.vcs = vcs.NewGitVCS()
	}

	if reference == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidReference)
	}

	// Path-looking references, and anything that names an existing
	// directory, are local. No @ref splitting applies to them.
	if local, ok := localPath(reference); ok {
		s.Local = local
		return s, nil
	}

	ref, rev := splitRev(reference)
	s.Ref = rev

	if isRemoteURL(ref) {
		s.Remote = ref
		s.Name = remoteName(ref)
		return s, nil
	}

	// owner/repo shorthand, hosted on GitHub.
	if strings.Count(ref, "/") == 1 {
		if err := module.CheckPath("github.com/" + ref); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidReference, reference, err)
		}
		s.Remote = "https://github.com/" + ref + ".git"
		s.Name = ref
		return s, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidReference, reference)
}

// Acquire returns a working directory containing the project tree:
// the directory itself for local sources, a synced clone-cache entry
// for remote ones. Cache syncs are serialized with a file lock so
// concurrent invocations do not corrupt a checkout.
func (s *Source) Acquire(ctx context.Context) (string, error) {
	if s.IsLocal() {
		info, err := os.Stat(s.Local)
		if err != nil {
			return "", fmt.Errorf("acquire %s: %w", s.Reference, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("acquire %s: not a directory", s.Reference)
		}
		return filepath.Abs(s.Local)
	}

	root := s.workDir
	if root == "" {
		var err error
		if root, err = env.WorkDir(); err != nil {
			return "", fmt.Errorf("acquire %s: %w", s.Reference, err)
		}
	}
	dir := filepath.Join(root, "src", filepath.FromSlash(s.Name))

	unlock, err := lockedfile.MutexAt(dir + ".lock").Lock()
	if err != nil {
		return "", fmt.Errorf("acquire %s: %w", s.Reference, err)
	}
	defer unlock()

	if err := s.vcs.Sync(ctx, s.Remote, s.Ref, dir); err != nil {
		return "", fmt.Errorf("acquire %s: %w", s.Reference, err)
	}
	return dir, nil
}

// localPath reports whether reference denotes a local directory and
// returns the path to use. Explicit path syntax counts even when the
// directory does not exist yet; the existence check belongs to Acquire.
func localPath(reference string) (string, bool) {
	if reference == "." || reference == ".." ||
		strings.HasPrefix(reference, "./") || strings.HasPrefix(reference, "../") ||
		filepath.IsAbs(reference) {
		return reference, true
	}
	if reference == "~" || strings.HasPrefix(reference, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			if reference == "~" {
				return home, true
			}
			return filepath.Join(home, reference[2:]), true
		}
	}
	if info, err := os.Stat(reference); err == nil && info.IsDir() {
		return reference, true
	}
	return "", false
}

// splitRev splits an "@ref" suffix off a remote reference. The suffix
// only counts when it cannot be part of a URL (no '/' or ':' in it),
// so "git@host:owner/repo" stays intact.
func splitRev(reference string) (ref, rev string) {
	i := strings.LastIndexByte(reference, '@')
	if i <= 0 {
		return reference, ""
	}
	suffix := reference[i+1:]
	if suffix == "" || strings.ContainsAny(suffix, "/:") {
		return reference, ""
	}
	return reference[:i], suffix
}

func isRemoteURL(ref string) bool {
	return strings.Contains(ref, "://") || strings.HasPrefix(ref, "git@")
}

// remoteName derives an "owner/repo" cache key from a clone URL.
func remoteName(remote string) string {
	trimmed := remote
	if i := strings.Index(trimmed, "://"); i >= 0 {
		trimmed = trimmed[i+3:]
	}
	trimmed = strings.TrimPrefix(trimmed, "git@")
	trimmed = strings.ReplaceAll(trimmed, ":", "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	parts := strings.Split(path.Clean(trimmed), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return sanitize(trimmed)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		}
		return '-'
	}, s)
}
