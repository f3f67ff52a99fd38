package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New builds a logger writing to w. Format is "json" or "console".
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "", "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "console", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

// Setup installs the logger as the slog default.
func Setup(level, format string, w io.Writer) error {
	logger, err := New(level, format, w)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
