// Package build implements the build command.
package build

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentstation/fipsref/internal/appcontext"
	"github.com/agentstation/fipsref/internal/cmd/output"
	"github.com/agentstation/fipsref/internal/store"
	"github.com/agentstation/fipsref/pkg/differ"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/logging"
	"github.com/agentstation/fipsref/pkg/lookup"
	"github.com/agentstation/fipsref/pkg/registry"
)

// Flags holds build command flags.
type Flags struct {
	Year               int
	Out                string
	Workdir            string
	IncludeSecondary   bool
	IncludeTerritories bool
	CommitGuard        bool
	BaseURL            string
	PublishDSN         string
	PublishDialect     string
}

// NewCommand creates the build command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	settings := app.Settings()
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Build the place code lookup table from the Census Gazetteer",
		Long: `Build downloads the Census Gazetteer "Places" file for every selected state,
keeps the records with a well-formed 7-digit place code, attaches state names,
and writes a deduplicated lookup table sorted by code.

A manifest with the sha256 of every input and of the output is written next
to the table. With --commit-guard the command exits non-zero when the new
table differs from the one it replaced. The new table is still written.`,
		Example: `  fipsref build                                 # Build the 2024 table
  fipsref build --year 2023 --out lookup-2023.csv
  fipsref build --include-territories           # Add AS, GU, MP and VI
  fipsref build --commit-guard                  # Flag changes to an existing table
  fipsref build --publish-dsn places.db         # Also load the table into SQLite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), cmd.OutOrStdout(), app, flags)
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.Year, "year", settings.Year, "Gazetteer release year")
	f.StringVar(&flags.Out, "out", settings.LookupCSV, "lookup table output path")
	f.StringVar(&flags.Workdir, "workdir", settings.Workdir, "directory caching downloaded source files")
	f.BoolVar(&flags.IncludeSecondary, "include-secondary", true, "include Puerto Rico")
	f.BoolVar(&flags.IncludeTerritories, "include-territories", false, "include AS, GU, MP and VI")
	f.BoolVar(&flags.CommitGuard, "commit-guard", false, "exit 1 when the output table changed")
	f.StringVar(&flags.BaseURL, "base-url", settings.BaseURL, "Gazetteer base URL")
	f.StringVar(&flags.PublishDSN, "publish-dsn", settings.Publish.DSN, "also publish the table to this database")
	f.StringVar(&flags.PublishDialect, "publish-dialect", settings.Publish.Dialect, "publish database dialect: sqlite, postgres, mysql")

	return cmd
}

// Run builds the lookup table and optionally publishes it.
func Run(ctx context.Context, w io.Writer, app appcontext.Interface, flags *Flags) error {
	ctx = logging.WithRunID(ctx, uuid.NewString())
	ctx = logging.WithOperation(ctx, "build")
	logger := logging.FromContext(ctx)

	reg := app.Registry(
		registry.WithSecondary(flags.IncludeSecondary),
		registry.WithTerritories(flags.IncludeTerritories),
	)

	logger.Info().
		Int("year", flags.Year).
		Int("states", len(reg.States())).
		Str("workdir", flags.Workdir).
		Msg("Building lookup table")

	// Snapshot the guarded table so drift can be explained afterwards.
	var previous []lookup.Entry
	explainable := true
	if flags.CommitGuard {
		entries, err := lookup.ReadEntries(flags.Out)
		switch {
		case err == nil:
			previous = entries
		case !errors.IsNotExist(err):
			explainable = false
			logger.Warn().Err(err).Str("path", flags.Out).Msg("Cannot read guarded lookup table")
		}
	}

	builder := lookup.NewBuilder(reg, app.Fetcher(flags.Workdir, flags.BaseURL), lookup.Options{
		Year:        flags.Year,
		Out:         flags.Out,
		CommitGuard: flags.CommitGuard,
	})

	result, buildErr := builder.Build(ctx)
	if result == nil {
		return buildErr
	}

	fmt.Fprintf(w, "Wrote %s with %s rows\n", flags.Out, output.Count(len(result.Entries)))

	if flags.PublishDSN != "" {
		if err := publish(ctx, w, app, flags, result.Entries); err != nil {
			return err
		}
	}

	if buildErr != nil && errors.IsDrift(buildErr) {
		if !explainable {
			fmt.Fprintf(w, "Lookup table changed; previous %s could not be read\n", flags.Out)
			logger.Warn().Err(buildErr).Msg("Lookup table changed")
			return buildErr
		}
		changes := differ.New().Entries(previous, result.Entries)
		fmt.Fprintln(w, changes.String())
		logger.Warn().
			Int("added", changes.Summary.Added).
			Int("updated", changes.Summary.Updated).
			Int("removed", changes.Summary.Removed).
			Err(buildErr).
			Msg("Lookup table changed")
	}
	return buildErr
}

func publish(ctx context.Context, w io.Writer, app appcontext.Interface, flags *Flags, entries []lookup.Entry) error {
	pub, err := app.Publisher(store.Config{Dialect: flags.PublishDialect, DSN: flags.PublishDSN})
	if err != nil {
		return err
	}
	defer func() { _ = pub.Close() }()

	if err := pub.Publish(ctx, entries); err != nil {
		return err
	}
	fmt.Fprintf(w, "Published %s rows to %s\n", output.Count(len(entries)), flags.PublishDialect)
	return nil
}
