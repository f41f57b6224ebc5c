package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// FromContext returns the logger attached to ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(contextKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithFields attaches a child of the context logger that carries keyvals on
// every entry, and returns the new context with that logger.
func WithFields(ctx context.Context, keyvals ...any) (context.Context, *log.Logger) {
	logger := FromContext(ctx).With(keyvals...)
	return WithLogger(ctx, logger), logger
}
