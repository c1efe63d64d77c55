package cmd

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger from LOG_FORMAT and LOG_LEVEL. An
// unparsable level falls back to info.
func NewLogger(config Config, w io.Writer) *slog.Logger {
	level, err := config.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if config.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
