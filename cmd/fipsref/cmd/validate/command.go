// Package validate implements the validate command.
package validate

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/fipsref/internal/appcontext"
	"github.com/agentstation/fipsref/internal/cmd/output"
	"github.com/agentstation/fipsref/pkg/dataset"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/logging"
	"github.com/agentstation/fipsref/pkg/lookup"
	"github.com/agentstation/fipsref/pkg/validate"
)

// Flags holds validate command flags.
type Flags struct {
	DatasetCSV   string
	LookupCSV    string
	CountryValue string
	CodeColumn   string
}

// NewCommand creates the validate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	settings := app.Settings()
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Validate dataset place codes against the lookup table",
		Long: `Validate checks every dataset row whose country matches --country-value.
A row is reported when its place code is not exactly 7 digits, does not start
with its state's 2-digit FIPS prefix, or is absent from the lookup table.

Exits 1 when any row is reported.`,
		Example: `  fipsref validate --dataset-csv ratings.csv
  fipsref validate --dataset-csv ratings.csv --lookup-csv lookup-2023.csv
  fipsref validate --dataset-csv ratings.csv -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), cmd.OutOrStdout(), app, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.DatasetCSV, "dataset-csv", "", "dataset CSV to validate")
	f.StringVar(&flags.LookupCSV, "lookup-csv", settings.LookupCSV, "lookup table built by fipsref build")
	f.StringVar(&flags.CountryValue, "country-value", settings.CountryValue, "country label selecting U.S. rows (case-insensitive)")
	f.StringVar(&flags.CodeColumn, "code-column", settings.CodeColumn, "dataset column holding the place code")
	_ = cmd.MarkFlagRequired("dataset-csv")

	return cmd
}

// Run validates the dataset and prints the report.
func Run(ctx context.Context, w io.Writer, app appcontext.Interface, flags *Flags) error {
	logger := logging.FromContext(logging.WithOperation(ctx, "validate"))

	ds, err := dataset.Read(flags.DatasetCSV)
	if err != nil {
		return err
	}
	known, err := lookup.ReadKeys(flags.LookupCSV)
	if err != nil {
		return err
	}

	v := &validate.Validator{
		Registry: app.Registry(),
		Known:    known,
		Column:   flags.CodeColumn,
	}
	report, err := v.Validate(ds, flags.CountryValue)
	if err != nil {
		return err
	}

	logger.Info().
		Int("rows", len(ds.Rows)).
		Int("selected", report.Total).
		Int("problems", len(report.Errors)).
		Int("lookup_keys", len(known)).
		Msg("Validated dataset")

	// Structured output only on request; piped runs keep the summary and table.
	format := output.Format(app.RequestedFormat())
	switch format {
	case output.FormatJSON, output.FormatYAML:
		if err := output.NewFormatter(format).Format(w, report); err != nil {
			return errors.WrapResource("format", "report", flags.DatasetCSV, err)
		}
	default:
		fmt.Fprintf(w, "Found %d problematic US rows out of %d total.\n", len(report.Errors), report.Total)
		if report.Failed() {
			data := output.RowErrorsToData(report.Errors, flags.CodeColumn)
			if err := output.NewFormatter(output.FormatTable).Format(w, data); err != nil {
				return errors.WrapResource("format", "report", flags.DatasetCSV, err)
			}
		}
	}

	return report.Err()
}
