package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/fipsref/internal/cmd/output"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/logging"
)

// Execute runs the fipsref CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	if path := configFlag(args); path != "" {
		if err := a.config.ReadConfigFile(path); err != nil {
			return errors.WrapResource("load", "config", path, err)
		}
	}

	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fipsref",
		Short:   "Census place code reconciliation",
		Version: a.version,
		Long: `fipsref builds a lookup table of valid 7-digit Census place codes from the
Census Bureau Gazetteer, validates the place codes of a city dataset against
it, and applies the one safe correction: left-padding codes that lost their
leading zeros.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "reference",
		Title: "Reference Commands:",
	})

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.fipsref.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevelFlag, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("fipsref {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// configFlag finds an explicit --config value before cobra parses flags, so
// config file values can seed subcommand flag defaults.
func configFlag(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			return ""
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
