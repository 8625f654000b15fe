package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fipsref/cmd/fipsref/cmd/build"
	"github.com/agentstation/fipsref/cmd/fipsref/cmd/fix"
	"github.com/agentstation/fipsref/cmd/fipsref/cmd/states"
	"github.com/agentstation/fipsref/cmd/fipsref/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(fix.NewCommand(a))

	// Reference commands
	rootCmd.AddCommand(states.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("fipsref %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
