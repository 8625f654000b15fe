package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/fipsref/pkg/constants"
)

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Year != constants.DefaultYear {
		t.Errorf("Year = %d, want %d", config.Year, constants.DefaultYear)
	}
	if config.LookupCSV != constants.DefaultLookupPath {
		t.Errorf("LookupCSV = %q, want %q", config.LookupCSV, constants.DefaultLookupPath)
	}
	if config.CountryValue != "UNITED STATES" {
		t.Errorf("CountryValue = %q, want UNITED STATES", config.CountryValue)
	}
	if config.CodeColumn != "census_fips_code" {
		t.Errorf("CodeColumn = %q, want census_fips_code", config.CodeColumn)
	}
	if config.HTTPTimeout != constants.DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", config.HTTPTimeout, constants.DefaultHTTPTimeout)
	}
	if config.PublishDialect != "sqlite" {
		t.Errorf("PublishDialect = %q, want sqlite", config.PublishDialect)
	}
	if !config.DCStatehood {
		t.Error("DCStatehood should always be enabled")
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("FIPSREF_YEAR", "2023")
	t.Setenv("FIPSREF_COUNTRY_VALUE", "USA")
	t.Setenv("FIPSREF_HTTP_TIMEOUT", "5s")
	t.Setenv("FIPSREF_PUBLISH_DSN", "places.db")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Year != 2023 {
		t.Errorf("Year = %d, want 2023", config.Year)
	}
	if config.CountryValue != "USA" {
		t.Errorf("CountryValue = %q, want USA", config.CountryValue)
	}
	if config.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", config.HTTPTimeout)
	}
	if config.PublishDSN != "places.db" {
		t.Errorf("PublishDSN = %q, want places.db", config.PublishDSN)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
}

// TestConfig_ReadConfigFile verifies an explicit config file.
func TestConfig_ReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fipsref.yaml")
	content := "year: 2022\nworkdir: /tmp/gaz\ncode_column: place_code\npublish:\n  dialect: postgres\n  dsn: postgres://localhost/places\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if err := config.ReadConfigFile(path); err != nil {
		t.Fatalf("ReadConfigFile() failed: %v", err)
	}

	if config.Year != 2022 {
		t.Errorf("Year = %d, want 2022", config.Year)
	}
	if config.Workdir != "/tmp/gaz" {
		t.Errorf("Workdir = %q, want /tmp/gaz", config.Workdir)
	}
	if config.CodeColumn != "place_code" {
		t.Errorf("CodeColumn = %q, want place_code", config.CodeColumn)
	}
	if config.PublishDialect != "postgres" || config.PublishDSN != "postgres://localhost/places" {
		t.Errorf("Publish = %q %q", config.PublishDialect, config.PublishDSN)
	}
	if config.CountryValue != constants.DefaultCountryValue {
		t.Errorf("CountryValue = %q, want default", config.CountryValue)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

// TestConfig_ReadConfigFile_Missing verifies a missing file is an error.
func TestConfig_ReadConfigFile_Missing(t *testing.T) {
	config := &Config{}
	if err := config.ReadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml"}

	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Errorf("flags not applied: %+v", config)
	}
	if config.Format != "yaml" {
		t.Errorf("empty format flag should keep %q, got %q", "yaml", config.Format)
	}

	config.UpdateFromFlags(false, false, false, "json", "trace")
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if config.LogLevelFlag != "trace" {
		t.Errorf("LogLevelFlag = %q, want trace", config.LogLevelFlag)
	}
}

// TestConfigFlag verifies --config is found before cobra parses flags.
func TestConfigFlag(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"build"}, ""},
		{[]string{"--config", "a.yaml", "build"}, "a.yaml"},
		{[]string{"build", "--config=b.yaml"}, "b.yaml"},
		{[]string{"build", "--", "--config", "c.yaml"}, ""},
		{[]string{"build", "--config"}, ""},
	}

	for _, tt := range tests {
		if got := configFlag(tt.args); got != tt.want {
			t.Errorf("configFlag(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
