package env

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPrefix is where builds are installed when no override is supplied.
const DefaultPrefix = "/usr/local"

// WorkDir returns the root directory of kiln's clone cache.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, "kiln"), nil
}

// ExpandPrefix normalizes a user-supplied installation prefix.
// An empty prefix selects DefaultPrefix, and a leading "~" is expanded
// against home. The result is cleaned but not required to exist.
func ExpandPrefix(raw, home string) string {
	switch {
	case raw == "":
		return DefaultPrefix
	case raw == "~":
		return filepath.Clean(home)
	case strings.HasPrefix(raw, "~/"):
		return filepath.Join(home, raw[2:])
	}
	return filepath.Clean(raw)
}
