// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc

import (
	"errors"
	"fmt"

	"github.com/momeni/lendweb/pkg/core/model"
)

// Option is a functional option for the users use case.
type Option func(uc *UseCase) error

// WithFineLimit option configures the largest amount of accumulated
// fines which still allows a user to borrow books.
func WithFineLimit(limit model.Money) Option {
	return func(uc *UseCase) error {
		if limit < 0 {
			return fmt.Errorf("fine limit (%s) is negative", limit)
		}
		if uc.fineLimit != nil {
			return errors.New("fine limit is already configured")
		}
		uc.fineLimit = &limit
		return nil
	}
}
