// Package logging defines the structured, context-aware logger used by the
// client. Two backends are provided: log/slog (default) and zap.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key/value pairs. Pairs attached to ctx with
// ContextWith precede them:
//
//	ctx = logging.ContextWith(ctx, "command", "buy")
//	log.Warn(ctx, "purchase failed", "id", id, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key/value pairs.
	With(args ...any) Logger
}
