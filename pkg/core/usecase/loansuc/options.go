// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansuc

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/lendweb/pkg/core/model"
)

// Option is a functional option for the loans use case.
type Option func(uc *UseCase) error

// WithClock option replaces the time.Now function which is used for
// finding the current day. Tests may pass a fixed clock.
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

// WithLoanPeriod option configures the default duration of loans
// which is used when no due date is given explicitly. The period must
// be a positive number of whole days.
func WithLoanPeriod(period time.Duration) Option {
	return func(uc *UseCase) error {
		const day = 24 * time.Hour
		if period <= 0 || period%day != 0 {
			return fmt.Errorf(
				"loan period (%v) is not a positive number of days",
				period,
			)
		}
		if uc.periodDays != 0 {
			return errors.New("loan period is already configured")
		}
		uc.periodDays = int(period / day)
		return nil
	}
}

// WithInventoryTracking option makes the loans creation to check and
// decrement the available quantity of the borrowed book, and makes
// returning an active loan to increment it back.
func WithInventoryTracking() Option {
	return func(uc *UseCase) error {
		if uc.trackInventory {
			return errors.New("inventory tracking is already enabled")
		}
		uc.trackInventory = true
		return nil
	}
}

// WithEligibilityCheck option rejects loans of users which are not
// active or have more than limit accumulated fines.
func WithEligibilityCheck(limit model.Money) Option {
	return func(uc *UseCase) error {
		if limit < 0 {
			return fmt.Errorf("fine limit (%s) is negative", limit)
		}
		if uc.fineLimit != nil {
			return errors.New("eligibility check is already enabled")
		}
		uc.fineLimit = &limit
		return nil
	}
}
