// Package log provides categorized, leveled logging for buzzkit.
//
// The TUI owns stdout, so logs go to a file (or nowhere until Init is
// called). Every call site names a Category so a session log can be
// filtered per concern.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatGame   Category = "game"
	CatInput  Category = "input"
	CatSound  Category = "sound"
	CatDB     Category = "db"
	CatUI     Category = "ui"
	CatConfig Category = "config"
)

var (
	mu     sync.Mutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	closer io.Closer
)

// ParseLevel converts a config/flag string into a slog level.
// Unrecognized values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// Init routes all subsequent logging to the given file, creating parent
// directories as needed. An empty path leaves logging discarded.
func Init(path string, level slog.Level) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: path comes from the user's own flag/config
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	closer = f
	return nil
}

// Close flushes and releases the log file, returning logging to a
// discard handler.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Debug logs a debug-level message for the given category.
func Debug(cat Category, msg string, args ...any) {
	get().Debug(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Info logs an info-level message for the given category.
func Info(cat Category, msg string, args ...any) {
	get().Info(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Warn logs a warn-level message for the given category.
func Warn(cat Category, msg string, args ...any) {
	get().Warn(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Error logs an error-level message for the given category.
func Error(cat Category, msg string, args ...any) {
	get().Error(msg, append([]any{"cat", string(cat)}, args...)...)
}

// ErrorErr logs an error-level message with an attached error value.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	Error(cat, msg, append([]any{"err", err}, args...)...)
}
