package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlparse/internal/config"
)

type configKey struct{}
type loggerKey struct{}

// WithConfig stores the loaded config on the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom retrieves the config from the context, falling back to
// defaults when none was stored.
func ConfigFrom(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Dialect: config.DefaultDialect,
		Format:  config.DefaultFormat,
	}
}

// WithLogger stores the logger on the context.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom retrieves the logger from the context. Returns a discard
// logger as a safe fallback.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
