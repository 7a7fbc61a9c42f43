package internal

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/internal/build"
	"github.com/kilnbuild/kiln/internal/config"
	"github.com/kilnbuild/kiln/internal/source"
)

var (
	flagPrefix  string
	flagVerbose bool
)

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

var rootCmd = &cobra.Command{
	Use:   "kiln <repository>",
	Short: "kiln builds a source repository into an install prefix",
	Long: `kiln acquires a source repository (owner/repo shorthand, clone URL,
or local directory), detects its build system (CMake, Autotools, or
plain Make), and runs the configure, build, and install steps against
an installation prefix.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&flagPrefix, "prefix", "p", "",
		"installation prefix; ~ is expanded (default /usr/local)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", true,
		"show full build tool output")
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("error:")+" "+err.Error())
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	opts := buildOptions(cmd, args[0], cfg)

	if !opts.Verbose {
		log.SetOutputLevel(log.Lwarn)
	}

	res, err := build.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if res.InstallSkipped {
		fmt.Printf("%s built %s, artifacts left in %s\n",
			warnStyle.Render("warning:"), args[0], res.OutputDir)
		return nil
	}
	fmt.Printf("%s %s into %s\n", okStyle.Render("installed"), args[0], res.OutputDir)
	return nil
}

// loadConfig reads the optional user config; any problem there
// degrades to defaults rather than blocking the build.
func loadConfig() *config.Config {
	path, err := config.Path()
	if err != nil {
		return &config.Config{}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Warnf("ignoring config: %v", err)
		return &config.Config{}
	}
	return cfg
}

// buildOptions merges config-file defaults with command-line flags;
// flags win whenever they were set explicitly.
func buildOptions(cmd *cobra.Command, reference string, cfg *config.Config) build.Options {
	opts := build.Options{
		Reference: reference,
		Prefix:    cfg.Prefix,
		Verbose:   flagVerbose,
	}
	if cmd.Flags().Changed("prefix") {
		opts.Prefix = flagPrefix
	}
	if cfg.Verbose != nil && !cmd.Flags().Changed("verbose") {
		opts.Verbose = *cfg.Verbose
	}
	if cfg.CacheDir != "" {
		opts.SourceOptions = append(opts.SourceOptions, source.WithWorkDir(cfg.CacheDir))
	}
	return opts
}
