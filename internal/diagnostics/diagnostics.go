// Package diagnostics builds the verbose-mode logger for cmd/mmdraw.
//
// It is a CLI-only concern: the core Render path takes no logger and never
// imports this package, so the two diagram engines stay pure functions.
package diagnostics

import (
	"io"
	"log/slog"
)

// New returns a text-handler logger writing to w, at LevelDebug when verbose
// is set and LevelWarn otherwise.
func New(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
