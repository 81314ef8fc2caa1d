package main

import (
	"io"
	"log/slog"
)

// newLogger builds the process logger. Debug lowers the level and adds
// source locations.
func newLogger(w io.Writer, debug, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
