// Package logging configures the global slog logger for clipkeep binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Setup configures the global slog logger. Call once after flag parsing.
//
// format is "auto", "text" or "json"; auto picks the human-readable tinter
// handler when stderr is a terminal and JSON otherwise. level is a slog
// level name, defaulting to info when empty or unrecognized.
func Setup(format, level string) {
	w := os.Stderr

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "text", "tint", "human":
		h = tintHandler(w, lvl)
	case "json":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		if IsTTY(w) {
			h = tintHandler(w, lvl)
		} else {
			h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
		}
	}
	slog.SetDefault(slog.New(h))
}

func tintHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return tinter.NewHandler(w, &tinter.Options{
		Level:      lvl,
		TimeFormat: "15:04:05.000",
	})
}
