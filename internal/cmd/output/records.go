package output

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentstation/fipsref/pkg/registry"
	"github.com/agentstation/fipsref/pkg/validate"
)

// Count renders n with thousands separators.
func Count(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// StatesToData renders registry entries as a table.
func StatesToData(states []registry.StateCode) Data {
	rows := make([][]string, len(states))
	for i, s := range states {
		rows[i] = []string{s.Prefix, s.Abbr, s.Name}
	}
	return Data{
		Headers:         []string{"state_fips", "state_abbr", "state_name"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// RowErrorsToData renders validation failures as a table. column is the
// dataset's place code column and labels the code header.
func RowErrorsToData(errs []validate.RowError, column string) Data {
	rows := make([][]string, len(errs))
	for i, e := range errs {
		rows[i] = []string{
			e.City,
			e.State,
			e.Code,
			strconv.FormatBool(e.LengthOK),
			strconv.FormatBool(e.PrefixOK),
			strconv.FormatBool(e.KnownPlace),
		}
	}
	return Data{
		Headers: []string{"city", "state", column, "valid_len", "state_prefix_ok", "place_known"},
		Rows:    rows,
	}
}
