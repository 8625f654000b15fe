// Package constants provides shared constants used throughout the fipsref codebase.
// This includes timeouts, file permissions, default paths and the reference
// source locations that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single Gazetteer download
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds cleanup after a command fails
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Gazetteer source constants
const (
	// GazetteerBaseURL is the Census Bureau root for yearly Gazetteer releases
	GazetteerBaseURL = "https://www2.census.gov/geo/docs/maps-data/data/gazetteer"

	// GazetteerSourceType labels the manifest source block
	GazetteerSourceType = "census_gazetteer_places"

	// DefaultYear is the Gazetteer release used when none is configured
	DefaultYear = 2024
)

// Default paths and labels
const (
	// DefaultLookupPath is where build writes, and validate reads, the lookup table
	DefaultLookupPath = "fips_place_lookup.csv"

	// DefaultWorkdir caches the raw per-state Gazetteer files
	DefaultWorkdir = ".cache/gazetteer_places"

	// DefaultFixedPath is the fix command's default output
	DefaultFixedPath = "city-ratings-all-historical-results-fixed.csv"

	// DefaultCountryValue selects U.S. rows in a dataset (case-insensitive)
	DefaultCountryValue = "UNITED STATES"

	// DefaultCodeColumn holds the place FIPS code in a dataset
	DefaultCodeColumn = "census_fips_code"

	// ManifestSuffix replaces the lookup table extension for the audit manifest
	ManifestSuffix = ".manifest.json"
)

// FIPS code shape
const (
	// PlaceCodeLength is the width of a place-level FIPS code
	PlaceCodeLength = 7

	// StatePrefixLength is the width of the state portion of a place code
	StatePrefixLength = 2
)

// Publishing constants
const (
	// DefaultPublishDialect is the database used when only a DSN is given
	DefaultPublishDialect = "sqlite"

	// PublishBatchSize bounds rows per INSERT when publishing the lookup table
	PublishBatchSize = 500
)
