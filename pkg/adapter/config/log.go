// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/momeni/lendweb/pkg/adapter/logger"
)

// Log contains the default logger settings.
type Log struct {
	Level  string // debug, info, warn, or error
	Format string // text or json

	level slog.Level
}

// ValidateAndNormalize parses the level and format names.
func (l *Log) ValidateAndNormalize() (err error) {
	if l.level, err = logger.ParseLevel(l.Level); err != nil {
		return err
	}
	switch f := strings.ToLower(l.Format); f {
	case "":
		l.Format = "text"
	case "text", "json":
		l.Format = f
	default:
		return fmt.Errorf("unknown log format: %q", l.Format)
	}
	return nil
}

// Install sets the default slog logger as configured by l and
// returns it.
func (l Log) Install() *slog.Logger {
	return logger.Install(l.Format, l.level)
}
