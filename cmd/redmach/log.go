package main

import (
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// newLogger builds the process logger: a terminal handler, plus the
// systemd journal when one is reachable.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}),
	}

	journal, err := slogjournal.NewHandler(&slogjournal.Options{})
	if err == nil {
		handlers = append(handlers, journal)
	}

	return slog.New(slogmulti.Fanout(handlers...))
}
