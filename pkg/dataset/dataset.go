// Package dataset reads and writes the externally owned CSV datasets that
// the validate and fix commands operate on. Cells are kept as the exact
// strings read, and column order is preserved on write.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/fipsref/internal/atomicfile"
	"github.com/agentstation/fipsref/pkg/errors"
)

// Well-known dataset columns.
const (
	ColumnCountry = "country"
	ColumnState   = "state"
	ColumnCity    = "city"
)

// Dataset is an in-memory CSV table.
type Dataset struct {
	Name   string
	Header []string
	Rows   [][]string

	lines []int
	index map[string]int
}

// Read loads a dataset from a CSV file.
func Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f, path)
}

// Parse reads a CSV stream whose first record is the header. Rows shorter
// than the header are padded with empty cells; longer rows are an error.
func Parse(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", name, "empty file, no header row", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	ds := New(name, header)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", name, err)
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    name,
				Line:    line,
				Message: "row has more fields than the header",
			}
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		line, _ := reader.FieldPos(0)
		ds.Rows = append(ds.Rows, row)
		ds.lines = append(ds.lines, line)
	}
	return ds, nil
}

// New creates an empty dataset with the given header.
func New(name string, header []string) *Dataset {
	ds := &Dataset{
		Name:   name,
		Header: header,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		if _, dup := ds.index[h]; !dup {
			ds.index[h] = i
		}
	}
	return ds
}

// Line returns the 1-based source line where row starts. Rows that were not
// parsed from a file are numbered as if each took one line after the header.
func (d *Dataset) Line(row int) int {
	if row < len(d.lines) {
		return d.lines[row]
	}
	return row + 2
}

// Require returns a ConfigError naming every absent column.
func (d *Dataset) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := d.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.NewMissingColumnsError("dataset "+d.Name, missing)
}

// Column returns the index of a named column.
func (d *Dataset) Column(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Get returns a cell by row index and column name, or "" if the column is absent.
func (d *Dataset) Get(row int, column string) string {
	i, ok := d.index[column]
	if !ok {
		return ""
	}
	return d.Rows[row][i]
}

// Set replaces a cell by row index and column name. Unknown columns are ignored.
func (d *Dataset) Set(row int, column, value string) {
	if i, ok := d.index[column]; ok {
		d.Rows[row][i] = value
	}
}

// Select returns the indices of rows whose country matches label.
func (d *Dataset) Select(label string) []int {
	var out []int
	for i := range d.Rows {
		if MatchCountry(d.Get(i, ColumnCountry), label) {
			out = append(out, i)
		}
	}
	return out
}

// MatchCountry compares a country cell to the configured label ignoring case.
func MatchCountry(value, label string) bool {
	fold := cases.Fold()
	return fold.String(value) == fold.String(label)
}

// Write atomically writes the dataset as CSV.
func (d *Dataset) Write(path string) error {
	return atomicfile.Write(path, d.Encode)
}

// Encode writes the dataset as CSV to w.
func (d *Dataset) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(d.Rows); err != nil {
		return err
	}
	return cw.Error()
}
