package buildsys

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFiles(t *testing.T, files map[string]os.FileMode) string {
	t.Helper()
	dir := t.TempDir()
	for name, mode := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# test\n"), mode); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]os.FileMode
		want  Kind
	}{
		{"cmake only", map[string]os.FileMode{"CMakeLists.txt": 0o644}, CMake},
		{"cmake beats makefile", map[string]os.FileMode{"CMakeLists.txt": 0o644, "Makefile": 0o644}, CMake},
		{"cmake beats autotools", map[string]os.FileMode{"CMakeLists.txt": 0o644, "configure.ac": 0o644}, CMake},
		{"configure script", map[string]os.FileMode{"configure": 0o755}, Autotools},
		{"configure.ac", map[string]os.FileMode{"configure.ac": 0o644}, Autotools},
		{"configure.in", map[string]os.FileMode{"configure.in": 0o644}, Autotools},
		{"autotools beats makefile", map[string]os.FileMode{"configure.ac": 0o644, "Makefile": 0o644}, Autotools},
		{"makefile", map[string]os.FileMode{"Makefile": 0o644}, Make},
		{"makefile lower", map[string]os.FileMode{"makefile": 0o644}, Make},
		{"gnumakefile", map[string]os.FileMode{"GNUmakefile": 0o644}, Make},
		{"makefile upper", map[string]os.FileMode{"MAKEFILE": 0o644}, Make},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)
			got, err := Detect(dir)
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectUnknown(t *testing.T) {
	dir := writeFiles(t, map[string]os.FileMode{"README.md": 0o644})
	kind, err := Detect(dir)
	if !errors.Is(err, ErrUnknownBuildSystem) {
		t.Fatalf("Detect = %v, want ErrUnknownBuildSystem", err)
	}
	if kind != Unknown {
		t.Errorf("kind = %v, want Unknown", kind)
	}
}

func TestDetectNonExecutableConfigure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no executable bit on windows")
	}
	// A configure script without the executable bit is not usable and
	// must not classify a tree as Autotools on its own.
	dir := writeFiles(t, map[string]os.FileMode{"configure": 0o644})
	kind, err := Detect(dir)
	if !errors.Is(err, ErrUnknownBuildSystem) {
		t.Fatalf("Detect = %v (%v), want ErrUnknownBuildSystem", kind, err)
	}
}

func TestDetectMissingDir(t *testing.T) {
	if _, err := Detect(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestMakefileName(t *testing.T) {
	dir := writeFiles(t, map[string]os.FileMode{"GNUmakefile": 0o644})
	name, err := MakefileName(dir)
	if err != nil {
		t.Fatal(err)
	}
	if name != "GNUmakefile" {
		t.Errorf("MakefileName = %q, want GNUmakefile", name)
	}

	empty := t.TempDir()
	name, err = MakefileName(empty)
	if err != nil || name != "" {
		t.Errorf("MakefileName(empty) = %q, %v", name, err)
	}
}

func TestMakefileDirIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "Makefile"), 0o755); err != nil {
		t.Fatal(err)
	}
	name, err := MakefileName(dir)
	if err != nil {
		t.Fatal(err)
	}
	if name != "" {
		t.Errorf("a directory named Makefile matched: %q", name)
	}
}
