// Package logging defines the structured-logging interface used across the
// project and a slog-backed implementation of it.
package logging

import "context"

// Logger is a leveled, context-aware logger. The variadic args are
// alternating key-value pairs:
//
//	log.Info(ctx, "listening", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that includes the given key-value
	// pairs on every record it emits.
	With(args ...any) Logger
}
