package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/fipsref/pkg/constants"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (json, console, auto)
	Format string

	// Output is where to write logs (stderr, stdout, discard, or file path)
	Output string

	// TimeFormat for console timestamps (kitchen, rfc3339, or a layout)
	TimeFormat string

	// NoColor disables color output in console mode
	NoColor bool

	// AddCaller includes file:line in log output
	AddCaller bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig creates a new logger from configuration
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(getWriter(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Configure updates the default logger with the given configuration
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// getWriter creates the appropriate writer based on configuration
func getWriter(cfg *Config) io.Writer {
	var output io.Writer
	var file *os.File
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		file = os.Stderr
		output = file
	case "stdout":
		file = os.Stdout
		output = file
	case "discard", "none":
		output = io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			file = os.Stderr
		} else {
			file = f
		}
		output = file
	}

	format := strings.ToLower(cfg.Format)
	if format == "auto" || format == "" {
		if file != nil && file == os.Stderr && isTerminal(file) {
			format = "console"
		} else {
			format = "json"
		}
	}

	switch format {
	case "console", "pretty":
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	default:
		return output
	}
}

// parseLevel parses a log level string
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(level); err == nil {
			return l
		}
		return zerolog.InfoLevel
	}
}

// parseTimeFormat parses time format configuration
func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	default:
		if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
			return format
		}
		return time.Kitchen
	}
}
