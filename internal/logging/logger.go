// Package logging wraps slog with the field names used by the cleanup
// operations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with plan-cleanup specific helpers.
type Logger struct {
	*slog.Logger
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// New creates a Logger writing to stderr. format is "text" or "json".
func New(level, format string) (*Logger, error) {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer, level, format string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return &Logger{Logger: slog.New(handler)}, nil
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithOp tags every record with the operation name.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{Logger: l.Logger.With("op", op)}
}

// WithDrawing tags every record with the drawing name.
func (l *Logger) WithDrawing(name string) *Logger {
	return &Logger{Logger: l.Logger.With("drawing", name)}
}

// LogExtend logs the outcome of an extend-to-closest run.
func (l *Logger) LogExtend(ctx context.Context, curves, extended, groups int) {
	l.InfoContext(ctx, "extend completed",
		"curves", curves,
		"extended", extended,
		"groups", groups,
	)
}

// LogOverlaps logs the outcome of an overlap scan.
func (l *Logger) LogOverlaps(ctx context.Context, curves, flagged int) {
	if flagged == 0 {
		l.InfoContext(ctx, "no overlapping lines", "curves", curves)
		return
	}
	l.InfoContext(ctx, "overlapping lines selected",
		"curves", curves,
		"flagged", flagged,
	)
}

// LogCluster logs the outcome of a block similarity run.
func (l *Logger) LogCluster(ctx context.Context, definitions, groups int) {
	l.InfoContext(ctx, "block clustering completed",
		"definitions", definitions,
		"groups", groups,
	)
}

// LogFile logs a file read or write.
func (l *Logger) LogFile(ctx context.Context, action, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, action+" failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, action+" completed", "path", path)
}

// LogWarnings logs import or export warnings one per record.
func (l *Logger) LogWarnings(ctx context.Context, source string, warnings []string) {
	for _, w := range warnings {
		l.WarnContext(ctx, w, "source", source)
	}
}
