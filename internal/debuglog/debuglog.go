// Package debuglog is the single formatted-write entry point the containers
// use for diagnostics. It is silent until Enable is called.
package debuglog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// Enable routes Debugf output to w as text records at debug level.
// Passing nil disables logging again.
func Enable(w io.Writer) {
	if w == nil {
		logger.Store(nil)
		return
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger.Store(slog.New(h).With("component", "egbase"))
}

// Enabled reports whether Debugf writes anywhere. Callers use it to skip
// building arguments on hot paths.
func Enabled() bool { return logger.Load() != nil }

// Debugf formats a message and writes it when logging is enabled.
func Debugf(format string, args ...any) {
	l := logger.Load()
	if l == nil {
		return
	}
	l.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(format, args...))
}
