package stack

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards everything, and says so up front so callers skip
// formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger for stack operations. By default nothing is
// logged; pass nil to go back to that. Safe for concurrent use.
//
// Stack edits (rotations, flips, overlay changes) log at
// [slog.LevelDebug]; rendering logs each applied filter at the same level.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
