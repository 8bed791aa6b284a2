// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the books use case.
type Option func(uc *UseCase) error

// WithMaxTitleLength option limits the number of characters of the
// book titles. It must be in the [1, 255] range since the titles
// column cannot keep longer values.
func WithMaxTitleLength(n int) Option {
	return func(uc *UseCase) error {
		if n < 1 || n > MaxTitleLength {
			return fmt.Errorf(
				"max title length (%d) is not in [1, %d]",
				n, MaxTitleLength,
			)
		}
		if uc.maxTitleLength != 0 {
			return errors.New("max title length is already configured")
		}
		uc.maxTitleLength = n
		return nil
	}
}

// WithMaxPages option configures the largest acceptable pages count.
func WithMaxPages(n int) Option {
	return func(uc *UseCase) error {
		if n < 1 {
			return fmt.Errorf("max pages (%d) is not positive", n)
		}
		if uc.maxPages != 0 {
			return errors.New("max pages is already configured")
		}
		uc.maxPages = n
		return nil
	}
}
