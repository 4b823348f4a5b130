package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// OpenLogger builds the process logger. With no file configured, records are
// discarded. The returned close func is never nil.
func OpenLogger(cfg LogConfig) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), noop, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, noop, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, noop, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.Level}))
	return logger, f.Close, nil
}
