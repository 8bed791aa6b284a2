// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Day is the length of a calendar day as used by the loan periods.
const Day = 24 * time.Hour

// Duration is a time.Duration which can be written in the config
// files either in the time.ParseDuration format (e.g., 30m or 336h)
// or as a whole number of days (e.g., 14d).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler, so yaml.v3 can
// decode scalars into a Duration. The receiver is updated only if
// data could be parsed.
func (d *Duration) UnmarshalText(data []byte) error {
	s := strings.TrimSpace(string(data))
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return errors.New("invalid number of days: " + s)
		}
		*d = Duration(time.Duration(n) * Day)
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// Marshal returns a string representation of the d duration, or nil
// if d is nil. Whole days are written with the d suffix and other
// values drop their zero trailing units, so 1h30m0s becomes 1h30m.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	dd := time.Duration(*d)
	if dd != 0 && dd%Day == 0 {
		s := strconv.FormatInt(int64(dd/Day), 10) + "d"
		return &s
	}
	s := dd.String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return &s
}

// MarshalText implements encoding.TextMarshaler using Marshal.
func (d *Duration) MarshalText() ([]byte, error) {
	if s := d.Marshal(); s != nil {
		return []byte(*s), nil
	}
	return nil, errors.New("nil duration")
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
