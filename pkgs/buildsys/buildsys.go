// Package buildsys classifies the build system governing a source tree
// and defines the contracts shared by the per-system wrappers.
package buildsys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies a build system.
type Kind int

const (
	Unknown Kind = iota
	CMake
	Autotools
	Make
)

func (k Kind) String() string {
	switch k {
	case CMake:
		return "cmake"
	case Autotools:
		return "autotools"
	case Make:
		return "make"
	}
	return "unknown"
}

// ErrUnknownBuildSystem reports a directory with no recognizable build
// system. Callers must abort; no build phase runs for Unknown.
var ErrUnknownBuildSystem = errors.New("no recognizable build system")

// Detect classifies dir, first match wins:
//
//  1. CMakeLists.txt                                  -> CMake
//  2. configure.ac, configure.in, or an executable
//     configure script                                -> Autotools
//  3. a makefile (case-insensitive, optional GNU
//     prefix)                                         -> Make
//
// The ordering is a deliberate priority: CMake generates Makefiles as
// a byproduct, and an autotools tree may carry a Makefile that is only
// a build artifact.
func Detect(dir string) (Kind, error) {
	if isFile(filepath.Join(dir, "CMakeLists.txt")) {
		return CMake, nil
	}
	if isFile(filepath.Join(dir, "configure.ac")) ||
		isFile(filepath.Join(dir, "configure.in")) ||
		isExecutable(filepath.Join(dir, "configure")) {
		return Autotools, nil
	}
	name, err := MakefileName(dir)
	if err != nil {
		return Unknown, err
	}
	if name != "" {
		return Make, nil
	}
	return Unknown, fmt.Errorf("%s: %w", dir, ErrUnknownBuildSystem)
}

// MakefileName returns the name of the makefile in dir, matching
// Makefile/makefile/GNUmakefile in any casing. Empty when none exists.
func MakefileName(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(entry.Name()) {
		case "makefile", "gnumakefile":
			return entry.Name(), nil
		}
	}
	return "", nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode()&0o111 != 0
}
