// Package states implements the states command.
package states

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/fipsref/internal/appcontext"
	"github.com/agentstation/fipsref/internal/cmd/output"
	"github.com/agentstation/fipsref/pkg/registry"
)

// NewCommand creates the states command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var secondary, territories bool

	cmd := &cobra.Command{
		Use:     "states",
		GroupID: "reference",
		Short:   "List the jurisdictions and their FIPS prefixes",
		Example: `  fipsref states
  fipsref states --include-territories -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := app.Registry(
				registry.WithSecondary(secondary),
				registry.WithTerritories(territories),
			)
			return Print(cmd.OutOrStdout(), output.Format(app.OutputFormat()), reg.States())
		},
	}

	cmd.Flags().BoolVar(&secondary, "include-secondary", true, "include Puerto Rico")
	cmd.Flags().BoolVar(&territories, "include-territories", false, "include AS, GU, MP and VI")

	return cmd
}

// Print writes states in the given format.
func Print(w io.Writer, format output.Format, states []registry.StateCode) error {
	var data any = output.StatesToData(states)
	if format == output.FormatJSON || format == output.FormatYAML {
		data = states
	}
	return output.NewFormatter(format).Format(w, data)
}
