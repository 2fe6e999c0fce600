package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type implLogger struct {
	zl    zerolog.Logger
	level zerolog.Level
}

// New creates a new Logger instance writing to stdout. Format is "console"
// or "json".
func New(level, format string) Logger {
	return newWithWriter(os.Stdout, level, format)
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &implLogger{zl: zerolog.Nop(), level: zerolog.Disabled}
}

func newWithWriter(w io.Writer, level, format string) *implLogger {
	lvl := parseLevel(level)

	out := w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return &implLogger{
		zl:    zerolog.New(out).Level(lvl).With().Timestamp().Logger(),
		level: lvl,
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) shouldLog(level zerolog.Level) bool {
	return level >= l.level
}

func (l *implLogger) event(ctx context.Context, evt *zerolog.Event) *zerolog.Event {
	if id := RunIDFromContext(ctx); id != "" {
		evt = evt.Str("run_id", id)
	}
	return evt
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.DebugLevel) {
		l.event(ctx, l.zl.Debug()).Msgf(msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.InfoLevel) {
		l.event(ctx, l.zl.Info()).Msgf(msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.WarnLevel) {
		l.event(ctx, l.zl.Warn()).Msgf(msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.ErrorLevel) {
		l.event(ctx, l.zl.Error()).Msgf(msg, args...)
	}
}
