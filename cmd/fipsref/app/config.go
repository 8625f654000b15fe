package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/fipsref/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Reference data and dataset defaults
	Year         int
	LookupCSV    string
	Workdir      string
	FixedCSV     string
	CountryValue string
	CodeColumn   string
	BaseURL      string
	HTTPTimeout  time.Duration

	// Publishing
	PublishDialect string
	PublishDSN     string

	// DCStatehood treats the District of Columbia as a state-equivalent in
	// the registry. Fixed at load time.
	DCStatehood bool

	// Logging configuration. LogLevel comes from LOG_LEVEL, LogLevelFlag
	// from --log-level.
	LogLevel     string
	LogLevelFlag string
	LogFormat    string
	LogOutput    string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (FIPSREF_ prefix)
// 3. .env files
// 4. Config file (~/.fipsref.yaml or ./.fipsref.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("fipsref")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile := os.Getenv("FIPSREF_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".fipsref")
	}

	// Read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return configFromViper(v), nil
}

// ReadConfigFile loads an explicit --config file on top of c. Values already
// present in the environment still win.
func (c *Config) ReadConfigFile(path string) error {
	v := viper.New()
	v.SetEnvPrefix("fipsref")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	loaded := configFromViper(v)
	c.ConfigFile = loaded.ConfigFile
	c.Year = loaded.Year
	c.LookupCSV = loaded.LookupCSV
	c.Workdir = loaded.Workdir
	c.FixedCSV = loaded.FixedCSV
	c.CountryValue = loaded.CountryValue
	c.CodeColumn = loaded.CodeColumn
	c.BaseURL = loaded.BaseURL
	c.HTTPTimeout = loaded.HTTPTimeout
	c.PublishDialect = loaded.PublishDialect
	c.PublishDSN = loaded.PublishDSN
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("year", constants.DefaultYear)
	v.SetDefault("lookup_csv", constants.DefaultLookupPath)
	v.SetDefault("workdir", constants.DefaultWorkdir)
	v.SetDefault("fixed_csv", constants.DefaultFixedPath)
	v.SetDefault("country_value", constants.DefaultCountryValue)
	v.SetDefault("code_column", constants.DefaultCodeColumn)
	v.SetDefault("gazetteer_base_url", constants.GazetteerBaseURL)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("publish.dialect", constants.DefaultPublishDialect)
	v.SetDefault("publish.dsn", "")
}

func configFromViper(v *viper.Viper) *Config {
	return &Config{
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		Year:         v.GetInt("year"),
		LookupCSV:    v.GetString("lookup_csv"),
		Workdir:      v.GetString("workdir"),
		FixedCSV:     v.GetString("fixed_csv"),
		CountryValue: v.GetString("country_value"),
		CodeColumn:   v.GetString("code_column"),
		BaseURL:      v.GetString("gazetteer_base_url"),
		HTTPTimeout:  v.GetDuration("http_timeout"),

		PublishDialect: v.GetString("publish.dialect"),
		PublishDSN:     v.GetString("publish.dsn"),

		DCStatehood: true,

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevelFlag = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set are never replaced, so .env.local is loaded before .env to
// take precedence over it.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
