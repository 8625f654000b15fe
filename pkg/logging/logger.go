// Package logging provides structured logging for fipsref using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so
// a build run in CI leaves machine-readable per-state fetch records.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("state", "TX").Msg("fetched gazetteer file")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	ctx = logging.WithRunID(ctx, runID)
//	logging.FromContext(ctx).Debug().Msg("parsed records")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger creates a logger with default settings.
func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if isTerminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := parseLevel(os.Getenv("LOG_LEVEL"))
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new JSON logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// NewNopLogger creates a logger that discards all output (useful for tests)
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// isTerminal checks if f is a character device.
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
