// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package logger builds the slog handlers which are installed as the
// default logger, so the pkg/core/log helpers write through them.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// ParseLevel converts a level name (debug, info, warn, or error) into
// its slog.Level. An empty name is taken as info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", name)
	}
}

// NewHandler creates a JSON handler if format is "json" and a text
// handler (colored on terminals) otherwise.
func NewHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
	})
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Install creates a handler for stderr and sets it as the default
// slog logger. It returns the installed logger.
func Install(format string, level slog.Leveler) *slog.Logger {
	l := slog.New(NewHandler(os.Stderr, format, level))
	slog.SetDefault(l)
	return l
}
