// Package validate checks the place codes of a dataset against the state
// registry and a lookup table.
package validate

import (
	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/dataset"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/normalize"
)

// PrefixResolver maps a state abbreviation to its expected FIPS prefix.
// An empty result means the state is unknown.
type PrefixResolver interface {
	ExpectedPrefix(abbr string) string
}

// RowError describes a selected row that failed at least one check.
type RowError struct {
	// Line is the 1-based line in the source file where the row starts.
	Line       int    `json:"line" yaml:"line"`
	City       string `json:"city" yaml:"city"`
	State      string `json:"state" yaml:"state"`
	Code       string `json:"code" yaml:"code"`
	LengthOK   bool   `json:"valid_len" yaml:"valid_len"`
	PrefixOK   bool   `json:"state_prefix_ok" yaml:"state_prefix_ok"`
	KnownPlace bool   `json:"place_known" yaml:"place_known"`
}

// Report is the result of validating one dataset.
type Report struct {
	Total    int        `json:"total" yaml:"total"`
	Problems int        `json:"problems" yaml:"problems"`
	Errors   []RowError `json:"errors" yaml:"errors"`
}

// Failed reports whether any row failed.
func (r *Report) Failed() bool {
	return len(r.Errors) > 0
}

// Err returns a ValidationFailedError when the report has failures.
func (r *Report) Err() error {
	if !r.Failed() {
		return nil
	}
	return &errors.ValidationFailedError{Problems: len(r.Errors), Total: r.Total}
}

// Validator holds the reference data a dataset is checked against.
type Validator struct {
	Registry PrefixResolver
	Known    map[string]struct{}
	// Column names the place code column. Defaults to census_fips_code.
	Column string
}

// Validate checks every row whose country matches label. A row fails when its
// code is not seven digits, does not start with its state's prefix, or is not
// in the lookup table.
func (v *Validator) Validate(ds *dataset.Dataset, label string) (*Report, error) {
	column := v.Column
	if column == "" {
		column = constants.DefaultCodeColumn
	}
	if err := ds.Require(dataset.ColumnCountry, dataset.ColumnState, dataset.ColumnCity, column); err != nil {
		return nil, err
	}

	report := &Report{Errors: []RowError{}}
	for _, i := range ds.Select(label) {
		report.Total++

		code := ds.Get(i, column)
		state := ds.Get(i, dataset.ColumnState)
		prefix := v.Registry.ExpectedPrefix(state)
		_, known := v.Known[code]

		re := RowError{
			Line:       ds.Line(i),
			City:       ds.Get(i, dataset.ColumnCity),
			State:      state,
			Code:       code,
			LengthOK:   normalize.IsPlaceCode(code),
			PrefixOK:   prefix != "" && len(code) >= constants.StatePrefixLength && code[:constants.StatePrefixLength] == prefix,
			KnownPlace: known,
		}
		if !re.LengthOK || !re.PrefixOK || !re.KnownPlace {
			report.Errors = append(report.Errors, re)
		}
	}
	report.Problems = len(report.Errors)
	return report, nil
}
