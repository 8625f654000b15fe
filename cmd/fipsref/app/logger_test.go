package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when nothing set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevelFlag: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides both flags",
			config:   &Config{LogLevelFlag: "trace", Verbose: true, Quiet: true},
			expected: "trace",
		},
		{
			name:     "both verbose and quiet prefers quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "LOG_LEVEL applies without flags",
			config:   &Config{LogLevel: "error"},
			expected: "error",
		},
		{
			name:     "verbose overrides LOG_LEVEL",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "debug",
		},
		{
			name:     "invalid level falls back to info",
			config:   &Config{LogLevelFlag: "loud"},
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests level validation.
func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		if got := validateLogLevel(level); got != level {
			t.Errorf("validateLogLevel(%q) = %q", level, got)
		}
	}
	if got := validateLogLevel("DEBUG"); got != "info" {
		t.Errorf("validateLogLevel(DEBUG) = %q, want info", got)
	}
}
