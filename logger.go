package nvram

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/nvram/persistence"
)

// Logger wraps slog.Logger with nvram-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithStore adds the store name to every record.
func (l *Logger) WithStore(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", name),
	}
}

// LogLoad logs the startup load of the region.
func (l *Logger) LogLoad(ctx context.Context, size int, err error) {
	if err != nil {
		l.WarnContext(ctx, "block load failed: default values will be used",
			"bytes", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "block loaded",
			"bytes", size,
		)
	}
}

// LogValidation logs the header check of a loaded block.
func (l *Logger) LogValidation(ctx context.Context, expected, loaded persistence.Header, err error) {
	if err != nil {
		l.ErrorContext(ctx, "block validation failed: store will not be updated",
			"expected_format", expected.Format,
			"format", loaded.Format,
			"expected_version", expected.Version,
			"version", loaded.Version,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "block validated",
			"version", loaded.Version,
		)
	}
}

// LogArm logs registration of the save hook.
func (l *Logger) LogArm(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save hook registration failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save hook armed")
	}
}

// LogSave logs the exit-time save of the region.
func (l *Logger) LogSave(ctx context.Context, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "block save failed: store will not be updated",
			"bytes", size,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "block saved",
			"bytes", size,
		)
	}
}
