package gazetteer

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/normalize"
)

// Gazetteer column names.
const (
	ColumnState = "USPS"
	ColumnGeoID = "GEOID"
	ColumnName  = "NAME"
)

// Record is one retained row of a place file.
type Record struct {
	GeoID     string
	PlaceName string
	StateAbbr string
}

// ParseFile parses a cached place file.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f, path)
}

// Parse reads a tab-delimited place file. Header cells are trimmed of
// whitespace and a leading byte-order mark. USPS, GEOID and NAME must be
// present. Rows whose GEOID is not exactly seven digits are dropped.
func Parse(r io.Reader, name string) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewMissingColumnsError("gazetteer "+name, []string{ColumnGeoID, ColumnName, ColumnState})
	}
	if err != nil {
		return nil, errors.WrapParse("tsv", name, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(h), "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	var missing []string
	for _, c := range []string{ColumnState, ColumnGeoID, ColumnName} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.NewMissingColumnsError("gazetteer "+name, missing)
	}

	stateIdx, geoIdx, nameIdx := cols[ColumnState], cols[ColumnGeoID], cols[ColumnName]

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("tsv", name, err)
		}

		geoID := field(row, geoIdx)
		if !normalize.IsPlaceCode(geoID) {
			continue
		}
		records = append(records, Record{
			GeoID:     geoID,
			PlaceName: field(row, nameIdx),
			StateAbbr: field(row, stateIdx),
		})
	}
	return records, nil
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
