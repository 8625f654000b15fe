// Package differ compares two versions of the lookup table and reports which
// place codes were added, removed or renamed.
package differ

import (
	"sort"

	"github.com/agentstation/fipsref/pkg/lookup"
)

// Differ handles change detection between lookup tables.
type Differ interface {
	// Entries compares two lookup tables keyed by GeoID.
	Entries(existing, updated []lookup.Entry) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields map[string]bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Entries compares two lookup tables and returns the changes.
func (diff *differ) Entries(existing, updated []lookup.Entry) *Changeset {
	changeset := &Changeset{
		Added:   []lookup.Entry{},
		Updated: []EntryUpdate{},
		Removed: []lookup.Entry{},
	}

	existingMap := make(map[string]lookup.Entry, len(existing))
	for _, e := range existing {
		existingMap[e.GeoID] = e
	}
	newMap := make(map[string]lookup.Entry, len(updated))
	for _, e := range updated {
		newMap[e.GeoID] = e
	}

	for _, e := range updated {
		old, exists := existingMap[e.GeoID]
		if !exists {
			changeset.Added = append(changeset.Added, e)
			continue
		}
		if changes := diff.fields(old, e); len(changes) > 0 {
			changeset.Updated = append(changeset.Updated, EntryUpdate{
				GeoID:    e.GeoID,
				Existing: old,
				New:      e,
				Changes:  changes,
			})
		}
	}

	for _, e := range existing {
		if _, exists := newMap[e.GeoID]; !exists {
			changeset.Removed = append(changeset.Removed, e)
		}
	}

	sortChangeset(changeset)
	changeset.Summary = calculateSummary(changeset)
	return changeset
}

// fields compares the non-key columns of one entry.
func (diff *differ) fields(existing, updated lookup.Entry) []FieldChange {
	var changes []FieldChange
	compare := func(path, oldValue, newValue string) {
		if diff.ignoreFields[path] || oldValue == newValue {
			return
		}
		changes = append(changes, FieldChange{
			Path:     path,
			OldValue: oldValue,
			NewValue: newValue,
			Type:     ChangeTypeUpdate,
		})
	}

	compare(lookup.ColumnPlaceName, existing.PlaceName, updated.PlaceName)
	compare(lookup.ColumnStateAbbr, existing.StateAbbr, updated.StateAbbr)
	compare(lookup.ColumnStateName, existing.StateName, updated.StateName)
	return changes
}

func sortChangeset(c *Changeset) {
	sort.Slice(c.Added, func(i, j int) bool { return c.Added[i].GeoID < c.Added[j].GeoID })
	sort.Slice(c.Removed, func(i, j int) bool { return c.Removed[i].GeoID < c.Removed[j].GeoID })
	sort.Slice(c.Updated, func(i, j int) bool { return c.Updated[i].GeoID < c.Updated[j].GeoID })
}
