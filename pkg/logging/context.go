package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// WithRunID tags the context logger with a build run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return WithField(ctx, "run_id", runID)
}

// RunID extracts the run ID from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithField adds a single string field to the logger in the context.
func WithField(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithState adds the state abbreviation being processed.
func WithState(ctx context.Context, abbr string) context.Context {
	return WithField(ctx, "state", abbr)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}
