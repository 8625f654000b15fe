// Package fix implements the fix command.
package fix

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/fipsref/internal/appcontext"
	"github.com/agentstation/fipsref/pkg/dataset"
	"github.com/agentstation/fipsref/pkg/logging"
	"github.com/agentstation/fipsref/pkg/normalize"
)

// Flags holds fix command flags.
type Flags struct {
	DatasetCSV   string
	Out          string
	CountryValue string
	CodeColumn   string
}

// NewCommand creates the fix command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	settings := app.Settings()
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "fix",
		GroupID: "core",
		Short:   "Left-pad short numeric place codes to 7 digits",
		Long: `Fix applies the only correction that cannot change meaning: a place code
made of digits and shorter than 7 characters is left-padded with zeros.

It never guesses at state prefix mismatches and never rewrites codes that
contain anything but digits. The input file is not modified; the full dataset
is written to --out. Run validate afterwards to see what is left.`,
		Example: `  fipsref fix --dataset-csv ratings.csv --out ratings-fixed.csv
  fipsref fix --dataset-csv ratings.csv --country-value USA`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.DatasetCSV, "dataset-csv", "", "dataset CSV to fix")
	f.StringVar(&flags.Out, "out", settings.FixedCSV, "output CSV path")
	f.StringVar(&flags.CountryValue, "country-value", settings.CountryValue, "country label selecting U.S. rows (case-insensitive)")
	f.StringVar(&flags.CodeColumn, "code-column", settings.CodeColumn, "dataset column holding the place code")
	_ = cmd.MarkFlagRequired("dataset-csv")

	return cmd
}

// Run pads the dataset's place codes and writes the result.
func Run(ctx context.Context, w io.Writer, flags *Flags) error {
	logger := logging.FromContext(logging.WithOperation(ctx, "fix"))

	ds, err := dataset.Read(flags.DatasetCSV)
	if err != nil {
		return err
	}

	changes, err := normalize.Fix(ds, flags.CountryValue, flags.CodeColumn)
	if err != nil {
		return err
	}
	for _, c := range changes {
		logger.Debug().
			Int("line", ds.Line(c.Row)).
			Str("before", c.Before).
			Str("after", c.After).
			Msg("Padded place code")
	}

	if err := ds.Write(flags.Out); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote fixed dataset to %s\n", flags.Out)
	fmt.Fprintf(w, "Updated %d US rows by left-padding %s to 7 digits (when safe).\n", len(changes), flags.CodeColumn)
	return nil
}
