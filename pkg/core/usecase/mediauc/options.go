// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package mediauc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the media use case.
type Option func(uc *UseCase) error

// WithMaxFileSize option configures the largest acceptable upload,
// in bytes.
func WithMaxFileSize(n int64) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("max file size (%d) is not positive", n)
		}
		if uc.maxFileSize != 0 {
			return errors.New("max file size is already configured")
		}
		uc.maxFileSize = n
		return nil
	}
}

// WithClock option replaces the time.Now function which decides the
// date based directories of the uploaded files.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
