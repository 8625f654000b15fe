package differ

import (
	"fmt"
	"strings"

	"github.com/agentstation/fipsref/pkg/lookup"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific column.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"`
	OldValue string     `json:"old_value" yaml:"old_value"`
	NewValue string     `json:"new_value" yaml:"new_value"`
	Type     ChangeType `json:"type" yaml:"type"`
}

// EntryUpdate represents a place code whose other columns changed.
type EntryUpdate struct {
	GeoID    string        `json:"geo_id" yaml:"geo_id"`
	Existing lookup.Entry  `json:"existing" yaml:"existing"`
	New      lookup.Entry  `json:"new" yaml:"new"`
	Changes  []FieldChange `json:"changes" yaml:"changes"`
}

// Changeset represents all changes between two lookup tables.
type Changeset struct {
	Added   []lookup.Entry   `json:"added" yaml:"added"`
	Updated []EntryUpdate    `json:"updated" yaml:"updated"`
	Removed []lookup.Entry   `json:"removed" yaml:"removed"`
	Summary ChangesetSummary `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int `json:"added" yaml:"added"`
	Updated      int `json:"updated" yaml:"updated"`
	Removed      int `json:"removed" yaml:"removed"`
	TotalChanges int `json:"total_changes" yaml:"total_changes"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

func calculateSummary(c *Changeset) ChangesetSummary {
	return ChangesetSummary{
		Added:        len(c.Added),
		Updated:      len(c.Updated),
		Removed:      len(c.Removed),
		TotalChanges: len(c.Added) + len(c.Updated) + len(c.Removed),
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if n := len(c.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(c.Updated); n > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", n))
	}
	if n := len(c.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	return "Place codes: " + strings.Join(parts, ", ")
}
