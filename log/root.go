// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// New returns a new logger with the given context.
// New is a convenient alias for Root().New.
func New(ctx ...any) Logger {
	return Root().With(ctx...)
}

// WithContext returns a logger carrying the given context that always
// writes through the current root handler. Unlike New, it is safe to
// assign to package-level vars before the root logger is configured.
func WithContext(ctx ...any) Logger {
	return &ctxLogger{ctx: ctx}
}

// ctxLogger resolves the root logger at log time.
type ctxLogger struct {
	ctx []any
}

func (c *ctxLogger) delegate() Logger {
	if len(c.ctx) == 0 {
		return Root()
	}
	return Root().With(c.ctx...)
}

func (c *ctxLogger) With(ctx ...any) Logger {
	return &ctxLogger{ctx: append(append([]any{}, c.ctx...), ctx...)}
}

func (c *ctxLogger) New(ctx ...any) Logger {
	return c.With(ctx...)
}

func (c *ctxLogger) Log(level slog.Level, msg string, ctx ...any) {
	c.delegate().Log(level, msg, ctx...)
}

func (c *ctxLogger) Trace(msg string, ctx ...any) {
	c.delegate().Trace(msg, ctx...)
}

func (c *ctxLogger) Debug(msg string, ctx ...any) {
	c.delegate().Debug(msg, ctx...)
}

func (c *ctxLogger) Info(msg string, ctx ...any) {
	c.delegate().Info(msg, ctx...)
}

func (c *ctxLogger) Warn(msg string, ctx ...any) {
	c.delegate().Warn(msg, ctx...)
}

func (c *ctxLogger) Error(msg string, ctx ...any) {
	c.delegate().Error(msg, ctx...)
}

func (c *ctxLogger) Crit(msg string, ctx ...any) {
	c.delegate().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

func (c *ctxLogger) Write(level slog.Level, msg string, attrs ...any) {
	c.delegate().Write(level, msg, attrs...)
}

func (c *ctxLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return c.delegate().Enabled(ctx, level)
}

func (c *ctxLogger) Handler() slog.Handler {
	return c.delegate().Handler()
}

// The following functions bypass the exported logger methods (logger.Debug,
// etc.) to keep the call depth the same for all paths to logger.Write so
// runtime.Caller(2) always refers to the call site in client code.

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) {
	Root().Write(LevelTrace, msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) {
	Root().Write(slog.LevelDebug, msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) {
	Root().Write(slog.LevelInfo, msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) {
	Root().Write(slog.LevelWarn, msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) {
	Root().Write(slog.LevelError, msg, ctx...)
}

// Crit is a convenient alias for Root().Crit
func Crit(msg string, ctx ...any) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
