// internal/cmdutil/log.go
package cmdutil

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// ParseLevel maps debug|info|warn|error; anything else is info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewLogger builds a logger writing to w. format is text, json or auto;
// auto means text on a terminal and json otherwise. quiet raises the level
// to error.
func NewLogger(level, format string, quiet bool, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	if quiet && lvl < slog.LevelError {
		lvl = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == "auto" {
		format = "json"
		if IsTerminal(w) {
			format = "text"
		}
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
