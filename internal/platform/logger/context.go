package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined in this package.
type contextKey int

// loggerKey is the context key under which a request-scoped logger is
// stored.
const loggerKey contextKey = iota

// WithLogger returns a new context carrying the given logger. Handlers and
// middleware use it to thread request-scoped attributes (trace ID, actor)
// into lower layers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger stored in the context, or nil if none
// is present.
func FromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)
	return logger
}

// FromContextOrDefault retrieves the logger stored in the context, falling
// back to the given default when the context carries none. If the default
// is also nil, slog.Default is returned.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}

	if def != nil {
		return def
	}

	return slog.Default()
}
