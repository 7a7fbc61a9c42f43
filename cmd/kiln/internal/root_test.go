package internal

import (
	"testing"

	"github.com/kilnbuild/kiln/internal/config"
)

func TestBuildOptionsFlagOverridesConfig(t *testing.T) {
	cmd := rootCmd
	if err := cmd.Flags().Set("prefix", "/opt/override"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		flagPrefix = ""
		flagVerbose = true
	})

	cfg := &config.Config{Prefix: "~/from-config"}
	opts := buildOptions(cmd, "owner/tool", cfg)

	if opts.Prefix != "/opt/override" {
		t.Errorf("Prefix = %q, want flag value", opts.Prefix)
	}
	if opts.Reference != "owner/tool" {
		t.Errorf("Reference = %q", opts.Reference)
	}
}

func TestBuildOptionsConfigVerbose(t *testing.T) {
	quiet := false
	cfg := &config.Config{Verbose: &quiet}

	opts := buildOptions(rootCmd, "owner/tool", cfg)
	if opts.Verbose {
		t.Error("Verbose = true, want config-file default false")
	}
}

func TestBuildOptionsCacheDir(t *testing.T) {
	cfg := &config.Config{CacheDir: "/var/cache/kiln"}
	opts := buildOptions(rootCmd, "owner/tool", cfg)
	if len(opts.SourceOptions) != 1 {
		t.Errorf("SourceOptions count = %d, want 1", len(opts.SourceOptions))
	}
}
