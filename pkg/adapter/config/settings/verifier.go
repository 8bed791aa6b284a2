// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError indicates that a named setting was out of its
// acceptable [Min, Max] range.
type OutOfRangeError[T cmp.Ordered] struct {
	Name     string // setting name, like usecases.books.max-pages
	Value    T      // the rejected value
	Min, Max T
}

// Error implements the error interface.
func (e *OutOfRangeError[T]) Error() string {
	return fmt.Sprintf(
		"%s (%v) must be between %v and %v", e.Name, e.Value, e.Min, e.Max,
	)
}

// VerifyRange checks that the value setting is either omitted (nil)
// or within the [minb, maxb] range. The out of range values are
// reported without being modified, so a wrong config file is rejected
// instead of being fixed silently.
func VerifyRange[T cmp.Ordered](
	name string, value *T, minb, maxb T,
) error {
	if minb > maxb {
		return fmt.Errorf("%s: min (%v) is greater than max (%v)",
			name, minb, maxb)
	}
	if value == nil {
		return nil
	}
	if v := *value; v < minb || v > maxb {
		return &OutOfRangeError[T]{Name: name, Value: v, Min: minb, Max: maxb}
	}
	return nil
}
