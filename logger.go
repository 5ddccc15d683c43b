package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/wordly/internal/storage"
)

// newLogger builds the application logger writing to w and makes it the
// slog default. Format "json" gives JSON lines, anything else text.
func newLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLogFile opens the log destination. The terminal belongs to the UI,
// so logs always go to a file; if none can be opened they are discarded.
func openLogFile(cfg LogConfig) (io.Writer, func()) {
	path := cfg.File
	if path == "" {
		dir, err := storage.DataDir()
		if err != nil {
			return io.Discard, func() {}
		}
		path = filepath.Join(dir, "wordly.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return io.Discard, func() {}
	}

	f, err := tea.LogToFile(path, "wordly")
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}
