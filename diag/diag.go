// Package diag carries an optional diagnostic logger through a context.
//
// Decoding is silent unless a caller attaches a logger:
//
//	ctx := diag.WithLogger(ctx, slog.New(slog.NewTextHandler(os.Stderr, nil)))
//	doc, err := ncs.ParseContext(ctx, data)
//
// The decoder logs bit positions and abort reasons at Debug level and
// best-effort aborts at Warn level.
package diag

import (
	"context"
	"io"
	"log/slog"
)

type loggerKey struct{}

var discard = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))

// WithLogger returns a context carrying logger. A nil logger leaves ctx
// unchanged.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		return ctx
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// From returns the logger attached to ctx, or a logger that discards
// everything.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return discard
}

// Enabled reports whether ctx carries a logger that accepts level.
func Enabled(ctx context.Context, level slog.Level) bool {
	return From(ctx).Enabled(ctx, level)
}
