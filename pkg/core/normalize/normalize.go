// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package normalize provides the text normalization helpers which are
// shared by the use cases before storing or comparing the user
// provided values.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Title trims s, collapses its internal whitespace runs into single
// spaces, and composes it in the Unicode NFC form, so equal looking
// titles have equal bytes.
func Title(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// TitleKey returns the case-folded form of Title(s). Two titles are
// duplicates if and only if their keys are equal.
func TitleKey(s string) string {
	return cases.Fold().String(Title(s))
}

// EqualTitles reports whether a and b are the same title, ignoring
// case and whitespace differences.
func EqualTitles(a, b string) bool {
	return TitleKey(a) == TitleKey(b)
}

// Email trims s and converts it to lower-case.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims s.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Search trims and lower-cases a free text search term.
func Search(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
