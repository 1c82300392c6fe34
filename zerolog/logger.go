// Package zerolog implements [genstream.Logger] on top of
// github.com/rs/zerolog.
package zerolog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/genstream"
	"github.com/rs/zerolog"
)

// Interface compliance check.
var _ genstream.Logger = (*Logger)(nil)

// Logger writes genstream diagnostics as zerolog events.
type Logger struct {
	zl zerolog.Logger
}

// New returns a Logger writing JSON lines to w. Events below level are
// dropped.
func New(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// NewConsole returns a Logger writing human-readable lines to w.
func NewConsole(w io.Writer, level zerolog.Level) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return New(cw, level)
}

// With returns a copy of l that adds key=value to every event.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Zerolog returns the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

// Info logs an info-level message.
func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

// Warn logs a warning-level message.
func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

// Error logs err at error level. A nil err is logged as "nil error".
func (l *Logger) Error(err error) {
	if err == nil {
		l.zl.Error().Msg("nil error")
		return
	}
	l.zl.Error().Err(err).Msg("")
}

// ParseLevel converts a level name ("debug", "info", "warn", "error",
// "disabled") to a zerolog.Level.
func ParseLevel(s string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("zerolog: %w", err)
	}
	if lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, nil
	}
	return lvl, nil
}
