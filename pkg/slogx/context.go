package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request scoped logger, falling back to the default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithUser tags the context logger with the authenticated caller so every
// later log line in the request carries who did it.
func WithUser(ctx context.Context, userID, role string) context.Context {
	return WithContext(ctx, FromContext(ctx).With("user_id", userID, "role", role))
}
