// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Money represents a monetary amount as an integral number of cents,
// so comparisons with limits such as 20.00 are exact.
type Money int64

// ErrInvalidMoney indicates that a string could not be parsed as an
// amount with at most two fractional digits.
var ErrInvalidMoney = errors.New("invalid monetary amount")

// Cents creates a Money value from the given cents.
func Cents(c int64) Money {
	return Money(c)
}

// ParseMoney parses amounts like "20", "20.5", or "-3.25".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, ErrInvalidMoney
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseUint(whole, 10, 53)
	if err != nil {
		return 0, ErrInvalidMoney
	}
	f, err := strconv.ParseUint(frac, 10, 8)
	if err != nil {
		return 0, ErrInvalidMoney
	}
	m := Money(w*100 + f)
	if neg {
		m = -m
	}
	return m, nil
}

// String formats m with exactly two fractional digits.
func (m Money) String() string {
	sign := ""
	c := int64(m)
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalText encodes m as its decimal string representation.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a decimal string as created by MarshalText.
func (m *Money) UnmarshalText(data []byte) error {
	v, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// LogValue implements slog.LogValuer.
func (m Money) LogValue() slog.Value {
	return slog.StringValue(m.String())
}
