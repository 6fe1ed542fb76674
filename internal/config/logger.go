package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger writing to w. Debug records are kept only
// in debug mode.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.DebugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
