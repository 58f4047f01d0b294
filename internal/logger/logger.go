// Package logger sets up the process-wide slog logger. The TUI owns the
// terminal, so output goes to a file unless told otherwise.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Setup builds the default logger writing to w. Level comes from LOG_LEVEL
// and format (text|json) from LOG_FORMAT.
func Setup(w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	defaultLogger = slog.New(h)
	return defaultLogger
}

// OpenFile opens LOG_FILE (default choromap.log) for appending.
func OpenFile() (*os.File, error) {
	p := os.Getenv("LOG_FILE")
	if p == "" {
		p = "choromap.log"
	}
	return os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// L returns the default logger. Before Setup it discards everything so that
// library code and tests never write into the terminal.
func L() *slog.Logger {
	if defaultLogger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return defaultLogger
}
