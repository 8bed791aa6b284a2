// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Valuer wraps a slog.LogValuer, e.g., a model.Money amount, so it is
// resolved lazily by the handler.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err reports the err message, or "no-error" for a nil err.
func Err(key string, err error) slog.Attr {
	if err == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, err.Error())
}

// ID reports a book, user, loan, or content identifier.
func ID(key string, id uuid.UUID) slog.Attr {
	return slog.String(key, id.String())
}

// Day reports the calendar day of t in the YYYY-MM-DD format.
func Day(key string, t time.Time) slog.Attr {
	return slog.String(key, t.Format(time.DateOnly))
}
