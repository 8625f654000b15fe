package lookup

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/agentstation/fipsref/internal/atomicfile"
	"github.com/agentstation/fipsref/pkg/errors"
)

// Lookup table columns, in file order.
const (
	ColumnGeoID     = "geo_id"
	ColumnPlaceName = "place_name"
	ColumnStateAbbr = "state_abbr"
	ColumnStateName = "state_name"

	// legacyGeoIDColumn is the key column name used by older lookup tables.
	legacyGeoIDColumn = "fips"
)

// Header is the canonical lookup table header.
var Header = []string{ColumnGeoID, ColumnPlaceName, ColumnStateAbbr, ColumnStateName}

// Entry is one row of the lookup table.
type Entry struct {
	GeoID     string `json:"geo_id" yaml:"geo_id"`
	PlaceName string `json:"place_name" yaml:"place_name"`
	StateAbbr string `json:"state_abbr" yaml:"state_abbr"`
	StateName string `json:"state_name" yaml:"state_name"`
}

// WriteTable atomically writes entries as the canonical lookup CSV.
func WriteTable(path string, entries []Entry) error {
	return atomicfile.Write(path, func(w io.Writer) error {
		return EncodeTable(w, entries)
	})
}

// EncodeTable writes entries as CSV to w.
func EncodeTable(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.GeoID, e.PlaceName, e.StateAbbr, e.StateName}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEntries loads a lookup CSV. Columns other than geo_id are optional.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewMissingColumnsError("lookup "+path, []string{ColumnGeoID})
	}
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}
	geoIdx, ok := cols[ColumnGeoID]
	if !ok {
		geoIdx, ok = cols[legacyGeoIDColumn]
	}
	if !ok {
		return nil, errors.NewMissingColumnsError("lookup "+path, []string{ColumnGeoID})
	}

	get := func(row []string, name string) string {
		if i, ok := cols[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	var entries []Entry
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		if geoIdx >= len(row) {
			continue
		}
		entries = append(entries, Entry{
			GeoID:     row[geoIdx],
			PlaceName: get(row, ColumnPlaceName),
			StateAbbr: get(row, ColumnStateAbbr),
			StateName: get(row, ColumnStateName),
		})
	}
	return entries, nil
}

// ReadKeys loads the set of place codes in a lookup CSV.
func ReadKeys(path string) (map[string]struct{}, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		keys[e.GeoID] = struct{}{}
	}
	return keys, nil
}
