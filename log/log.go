// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin facade over go-ethereum's slog based logger.
// Loggers created by WithContext follow the root logger, so package level
// loggers pick up the handler installed by the command line at start.
package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Levels, from the most verbose.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Logger writes key/value pairs to a handler.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
	Enabled(ctx context.Context, level slog.Level) bool
}

type contextLogger struct {
	ctx []any
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

func (l *contextLogger) target() ethlog.Logger {
	return ethlog.Root().With(l.ctx...)
}

func (l *contextLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(append(merged, l.ctx...), ctx...)
	return &contextLogger{ctx: merged}
}

func (l *contextLogger) Trace(msg string, ctx ...any) { l.target().Trace(msg, ctx...) }
func (l *contextLogger) Debug(msg string, ctx ...any) { l.target().Debug(msg, ctx...) }
func (l *contextLogger) Info(msg string, ctx ...any)  { l.target().Info(msg, ctx...) }
func (l *contextLogger) Warn(msg string, ctx ...any)  { l.target().Warn(msg, ctx...) }
func (l *contextLogger) Error(msg string, ctx ...any) { l.target().Error(msg, ctx...) }
func (l *contextLogger) Crit(msg string, ctx ...any)  { l.target().Crit(msg, ctx...) }

func (l *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return ethlog.Root().Enabled(ctx, level)
}

// SetDefault installs h as the handler of the root logger.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Root returns the root handler, to be restored after tests swap it.
func Root() slog.Handler {
	return ethlog.Root().Handler()
}

// VerbosityLevel converts the 0 (crit) to 5 (trace) verbosity of the command line.
func VerbosityLevel(verbosity int) slog.Level {
	return ethlog.FromLegacyLevel(verbosity)
}

// NewTerminalHandler returns a human readable handler, colored when useColor is set.
func NewTerminalHandler(w io.Writer, level slog.Level, useColor bool) slog.Handler {
	return ethlog.NewTerminalHandlerWithLevel(w, level, useColor)
}

// NewJSONHandler returns a handler emitting one JSON object per record.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return ethlog.JSONHandlerWithLevel(w, level)
}

// DiscardHandler drops every record.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}
