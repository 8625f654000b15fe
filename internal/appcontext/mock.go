package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/fipsref/internal/gazetteer"
	"github.com/agentstation/fipsref/internal/store"
	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/lookup"
	"github.com/agentstation/fipsref/pkg/registry"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a working default.
type Mock struct {
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	RequestedFormatFunc func() string
	SettingsFunc        func() Settings
	RegistryFunc        func(...registry.Option) *registry.Registry
	FetcherFunc         func(workdir, baseURL string) lookup.Fetcher
	PublisherFunc       func(cfg store.Config) (Publisher, error)
	VersionFunc         func() string
	CommitFunc          func() string
	DateFunc            func() string
	BuiltByFunc         func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// RequestedFormat returns the format using the mock function or "".
func (m *Mock) RequestedFormat() string {
	if m.RequestedFormatFunc != nil {
		return m.RequestedFormatFunc()
	}
	return ""
}

// Settings returns settings using the mock function or DefaultSettings.
func (m *Mock) Settings() Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return DefaultSettings()
}

// Registry returns a registry using the mock function or registry.New.
func (m *Mock) Registry(opts ...registry.Option) *registry.Registry {
	if m.RegistryFunc != nil {
		return m.RegistryFunc(opts...)
	}
	return registry.New(opts...)
}

// Fetcher returns a fetcher using the mock function or a Gazetteer client.
func (m *Mock) Fetcher(workdir, baseURL string) lookup.Fetcher {
	if m.FetcherFunc != nil {
		return m.FetcherFunc(workdir, baseURL)
	}
	client := gazetteer.NewClient(workdir)
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	return client
}

// Publisher returns a publisher using the mock function or store.Open.
func (m *Mock) Publisher(cfg store.Config) (Publisher, error) {
	if m.PublisherFunc != nil {
		return m.PublisherFunc(cfg)
	}
	return store.Open(cfg)
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Year:         constants.DefaultYear,
		LookupCSV:    constants.DefaultLookupPath,
		Workdir:      constants.DefaultWorkdir,
		FixedCSV:     constants.DefaultFixedPath,
		CountryValue: constants.DefaultCountryValue,
		CodeColumn:   constants.DefaultCodeColumn,
		BaseURL:      constants.GazetteerBaseURL,
		Publish:      store.Config{Dialect: constants.DefaultPublishDialect},
	}
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
