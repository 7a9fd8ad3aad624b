/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package logging builds the zerolog logger used by the command line tool.
// Library types default to a no-op logger and accept one through options.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/suparena/attrdao/config"
)

// Configure returns a logger writing to stderr. Unknown levels fall back to
// info; a disabled configuration discards everything.
func Configure(cfg config.Logging) zerolog.Logger {
	return New(os.Stderr, cfg)
}

// New returns a logger writing to w.
func New(w io.Writer, cfg config.Logging) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	output := w
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", "attrdao").
		Logger()
}
