// Package lookup builds the canonical place-code lookup table from the
// Census Gazetteer and records how it was produced.
package lookup

import (
	"context"
	"os"
	"sort"

	"github.com/agentstation/fipsref/internal/gazetteer"
	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/logging"
	"github.com/agentstation/fipsref/pkg/registry"
)

// Fetcher retrieves the source file for one state.
type Fetcher interface {
	Fetch(ctx context.Context, year int, state registry.StateCode) (*gazetteer.Download, error)
}

// StateSource lists the jurisdictions to include in a build.
type StateSource interface {
	States() []registry.StateCode
}

// Options configures a build.
type Options struct {
	Year        int
	Out         string
	CommitGuard bool
	SourceType  string
}

// Result is the outcome of a build.
type Result struct {
	Entries      []Entry
	Manifest     *Manifest
	ManifestPath string
	// PreviousHash is set only when the commit guard found an existing file.
	PreviousHash string
	Changed      bool
}

// Builder assembles the lookup table.
type Builder struct {
	states  StateSource
	fetcher Fetcher
	opts    Options
}

// NewBuilder creates a Builder.
func NewBuilder(states StateSource, fetcher Fetcher, opts Options) *Builder {
	if opts.Year == 0 {
		opts.Year = constants.DefaultYear
	}
	if opts.Out == "" {
		opts.Out = constants.DefaultLookupPath
	}
	if opts.SourceType == "" {
		opts.SourceType = constants.GazetteerSourceType
	}
	return &Builder{states: states, fetcher: fetcher, opts: opts}
}

// Build fetches every state, writes the lookup table and its manifest, and
// returns the result. When the commit guard is enabled and the table content
// changed, the result is returned together with a DriftError.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)
	out := b.opts.Out

	var previous string
	if b.opts.CommitGuard {
		if _, err := os.Stat(out); err == nil {
			h, err := SHA256File(out)
			if err != nil {
				return nil, err
			}
			previous = h
		}
	}

	states := b.states.States()
	byAbbr, err := indexStates(states)
	if err != nil {
		return nil, err
	}

	var (
		inputs  []Input
		entries []Entry
		seen    = make(map[string]struct{})
	)
	for _, state := range states {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapResource("build", "lookup", out, err)
		}
		stateCtx := logging.WithState(ctx, state.Abbr)

		dl, err := b.fetcher.Fetch(stateCtx, b.opts.Year, state)
		if err != nil {
			return nil, err
		}
		records, err := gazetteer.ParseFile(dl.Path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{URL: dl.URL, Path: dl.Path, SHA256: dl.SHA256})

		added := 0
		for _, rec := range records {
			if _, dup := seen[rec.GeoID]; dup {
				continue
			}
			seen[rec.GeoID] = struct{}{}
			entries = append(entries, Entry{
				GeoID:     rec.GeoID,
				PlaceName: rec.PlaceName,
				StateAbbr: rec.StateAbbr,
				StateName: byAbbr[rec.StateAbbr].Name,
			})
			added++
		}
		logging.FromContext(stateCtx).Info().
			Int("records", len(records)).
			Int("added", added).
			Msg("Loaded gazetteer places")
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GeoID < entries[j].GeoID
	})

	if err := WriteTable(out, entries); err != nil {
		return nil, err
	}
	hash, err := SHA256File(out)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Source: Source{Type: b.opts.SourceType, Year: b.opts.Year},
		Inputs: inputs,
		Output: Output{Path: out, SHA256: hash, RowCount: len(entries)},
	}
	manifestPath := ManifestPath(out)
	if err := WriteManifest(manifestPath, manifest); err != nil {
		return nil, err
	}

	result := &Result{
		Entries:      entries,
		Manifest:     manifest,
		ManifestPath: manifestPath,
		PreviousHash: previous,
		Changed:      previous != "" && previous != hash,
	}

	logger.Info().
		Str("path", out).
		Int("rows", len(entries)).
		Str("sha256", hash).
		Msg("Wrote lookup table")

	if result.Changed {
		return result, &errors.DriftError{Path: out, OldHash: previous, NewHash: hash}
	}
	return result, nil
}

// indexStates maps abbreviations to registry entries. Each abbreviation must
// map to exactly one entry or the state name join would fan out.
func indexStates(states []registry.StateCode) (map[string]registry.StateCode, error) {
	counts := make(map[string]int, len(states))
	for _, s := range states {
		counts[s.Abbr]++
	}
	index := make(map[string]registry.StateCode, len(states))
	for _, s := range states {
		if n := counts[s.Abbr]; n > 1 {
			return nil, errors.NewIntegrityError("state_abbr", s.Abbr, n)
		}
		index[s.Abbr] = s
	}
	return index, nil
}
