// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/fipsref/internal/store"
	"github.com/agentstation/fipsref/pkg/lookup"
	"github.com/agentstation/fipsref/pkg/registry"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/fipsref/app implements it; tests use Mock.
type Interface interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// RequestedFormat returns the format set by flag, environment or config
	// file, or "" when none was set.
	RequestedFormat() string

	// Settings returns configured defaults for command flags.
	Settings() Settings

	// Registry builds a state registry with the process-wide DC treatment
	// applied after opts.
	Registry(opts ...registry.Option) *registry.Registry

	// Fetcher returns a source fetcher that downloads from baseURL and
	// caches into workdir. An empty baseURL means the configured one.
	Fetcher(workdir, baseURL string) lookup.Fetcher

	// Publisher opens the database the lookup table is published to.
	Publisher(cfg store.Config) (Publisher, error)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// Publisher stores a built lookup table.
type Publisher interface {
	Publish(ctx context.Context, entries []lookup.Entry) error
	Close() error
}

// Settings are the configured defaults commands fall back to when a flag is
// not given.
type Settings struct {
	Year         int
	LookupCSV    string
	Workdir      string
	FixedCSV     string
	CountryValue string
	CodeColumn   string
	BaseURL      string
	Publish      store.Config
}
