// Package app provides the application context and dependency management
// for the fipsref CLI. It centralizes configuration, logging and the
// construction of registries, fetchers and publishers.
package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/fipsref/internal/appcontext"
	"github.com/agentstation/fipsref/internal/cmd/output"
	"github.com/agentstation/fipsref/internal/gazetteer"
	"github.com/agentstation/fipsref/internal/store"
	"github.com/agentstation/fipsref/internal/transport"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/lookup"
	"github.com/agentstation/fipsref/pkg/registry"
)

// App represents the fipsref application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested format, or one detected from stdout.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// RequestedFormat returns the explicitly configured format without detection.
func (a *App) RequestedFormat() string {
	return strings.ToLower(a.config.Format)
}

// Settings returns the configured flag defaults.
func (a *App) Settings() appcontext.Settings {
	return appcontext.Settings{
		Year:         a.config.Year,
		LookupCSV:    a.config.LookupCSV,
		Workdir:      a.config.Workdir,
		FixedCSV:     a.config.FixedCSV,
		CountryValue: a.config.CountryValue,
		CodeColumn:   a.config.CodeColumn,
		BaseURL:      a.config.BaseURL,
		Publish: store.Config{
			Dialect: a.config.PublishDialect,
			DSN:     a.config.PublishDSN,
		},
	}
}

// Registry builds a state registry. DC treatment always comes from the
// application config and cannot be overridden per command.
func (a *App) Registry(opts ...registry.Option) *registry.Registry {
	opts = append(opts, registry.WithDCStatehood(a.config.DCStatehood))
	return registry.New(opts...)
}

// Fetcher returns a Gazetteer client with the configured timeout.
func (a *App) Fetcher(workdir, baseURL string) lookup.Fetcher {
	client := gazetteer.NewClient(workdir, transport.WithTimeout(a.config.HTTPTimeout))
	client.BaseURL = a.config.BaseURL
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	return client
}

// Publisher opens the publish database.
func (a *App) Publisher(cfg store.Config) (appcontext.Publisher, error) {
	return store.Open(cfg)
}

// Shutdown performs graceful shutdown of the application. Commands hold no
// background resources, so it only flushes a final debug line.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
