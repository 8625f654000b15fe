// Package normalize applies the one safe correction fipsref performs on a
// dataset: left-padding purely numeric place codes to seven digits.
//
// Codes that contain anything other than ASCII digits, or that are already
// seven or more digits long, are never touched. Wrong-prefix and unknown-place
// defects are reported by validation and left for a human to resolve.
package normalize

import (
	"strings"

	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/dataset"
)

// IsPlaceCode reports whether s is exactly seven ASCII digits.
func IsPlaceCode(s string) bool {
	return len(s) == constants.PlaceCodeLength && isDigits(s)
}

// Pad7 left-pads an all-digit string shorter than seven characters with
// zeros. Any other input is returned unchanged.
func Pad7(s string) string {
	if isDigits(s) && len(s) < constants.PlaceCodeLength {
		return strings.Repeat("0", constants.PlaceCodeLength-len(s)) + s
	}
	return s
}

// Change records one rewritten cell.
type Change struct {
	Row    int
	Before string
	After  string
}

// Fix applies Pad7 to column for every row whose country matches label and
// returns the cells that actually changed. Only the in-memory dataset is
// modified.
func Fix(ds *dataset.Dataset, label, column string) ([]Change, error) {
	if err := ds.Require(dataset.ColumnCountry, column); err != nil {
		return nil, err
	}

	var changes []Change
	for _, i := range ds.Select(label) {
		before := ds.Get(i, column)
		after := Pad7(before)
		if after == before {
			continue
		}
		ds.Set(i, column, after)
		changes = append(changes, Change{Row: i, Before: before, After: after})
	}
	return changes, nil
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
