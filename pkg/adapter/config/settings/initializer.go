// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which the config
// package uses for filling the omitted optional settings with their
// defaults and keeping the numeric settings within their bounds.
// Optional settings are kept as pointers, so an omitted item (nil)
// can be told apart from an explicit zero value.
package settings

// Default makes (*t) point to a copy of def if it is nil.
// Explicitly configured values are left intact.
func Default[T any](t **T, def T) {
	if *t != nil {
		return
	}
	*t = &def
}

// Value returns (*t) or the zero value of T if t is nil.
func Value[T any](t *T) (v T) {
	if t != nil {
		v = *t
	}
	return v
}
