// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"

	"github.com/momeni/lendweb/pkg/adapter/config/settings"
	"github.com/momeni/lendweb/pkg/adapter/storage/local"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
	"github.com/momeni/lendweb/pkg/core/usecase/booksuc"
	"github.com/momeni/lendweb/pkg/core/usecase/loansuc"
	"github.com/momeni/lendweb/pkg/core/usecase/mediauc"
	"github.com/momeni/lendweb/pkg/core/usecase/usersuc"
)

// Bounds of the use cases settings.
const (
	MaxPagesLimit    = 100000
	MaxUploadSize    = 32 << 20
	MaxLoanPeriod    = 365 * settings.Day
	DefaultMediaDir  = "media"
	DefaultMediaPath = "/media"
)

// Usecases contains the settings of the use cases. Omitted items keep
// the defaults of their use cases.
type Usecases struct {
	Books Books
	Users Users
	Loans Loans
	Media Media
}

// ValidateAndNormalize verifies the ranges of all use cases settings.
func (u *Usecases) ValidateAndNormalize() error {
	checks := []error{
		settings.VerifyRange(
			"usecases.books.max-title-length", u.Books.MaxTitleLength,
			1, booksuc.MaxTitleLength,
		),
		settings.VerifyRange(
			"usecases.books.max-pages", u.Books.MaxPages,
			1, MaxPagesLimit,
		),
		settings.VerifyRange(
			"usecases.users.fine-limit", u.Users.FineLimit,
			0, model.Money(1<<40),
		),
		settings.VerifyRange(
			"usecases.loans.period", u.Loans.Period,
			settings.Duration(settings.Day), settings.Duration(MaxLoanPeriod),
		),
		settings.VerifyRange(
			"usecases.media.max-file-size", u.Media.MaxFileSize,
			1, MaxUploadSize,
		),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if p := u.Loans.Period; p != nil && time.Duration(*p)%settings.Day != 0 {
		return fmt.Errorf(
			"usecases.loans.period (%s) is not a whole number of days",
			*p.Marshal(),
		)
	}
	if u.Media.Dir == "" {
		u.Media.Dir = DefaultMediaDir
	}
	if u.Media.BaseURL == "" {
		u.Media.BaseURL = DefaultMediaPath
	}
	return nil
}

// Books contains the catalog limits.
type Books struct {
	MaxTitleLength *int `yaml:"max-title-length"`
	MaxPages       *int `yaml:"max-pages"`
}

// NewUseCase instantiates a books use case.
func (b Books) NewUseCase(p repo.Pool, r repo.Books) (*booksuc.UseCase, error) {
	var opts []booksuc.Option
	if b.MaxTitleLength != nil {
		opts = append(opts, booksuc.WithMaxTitleLength(*b.MaxTitleLength))
	}
	if b.MaxPages != nil {
		opts = append(opts, booksuc.WithMaxPages(*b.MaxPages))
	}
	return booksuc.New(p, r, opts...)
}

// Users contains the users settings. FineLimit is written as a decimal
// amount, like 20.00.
type Users struct {
	FineLimit *model.Money `yaml:"fine-limit"`
}

// NewUseCase instantiates a users use case.
func (u Users) NewUseCase(
	p repo.Pool, users repo.Users, loans repo.Loans,
) (*usersuc.UseCase, error) {
	var opts []usersuc.Option
	if u.FineLimit != nil {
		opts = append(opts, usersuc.WithFineLimit(*u.FineLimit))
	}
	return usersuc.New(p, users, loans, opts...)
}

// Loans contains the lending policy. Both checks are disabled by
// default, so books may be lent regardless of their inventory and
// the borrower fines.
type Loans struct {
	Period            *settings.Duration
	InventoryTracking bool `yaml:"inventory-tracking"`
	EligibilityCheck  bool `yaml:"eligibility-check"`
}

// NewUseCase instantiates a loans use case. The fineLimit is used
// only if the eligibility check is enabled.
func (l Loans) NewUseCase(
	p repo.Pool, loans repo.Loans, users repo.Users, books repo.Books,
	fineLimit model.Money,
) (*loansuc.UseCase, error) {
	var opts []loansuc.Option
	if l.Period != nil {
		opts = append(opts, loansuc.WithLoanPeriod(time.Duration(*l.Period)))
	}
	if l.InventoryTracking {
		opts = append(opts, loansuc.WithInventoryTracking())
	}
	if l.EligibilityCheck {
		opts = append(opts, loansuc.WithEligibilityCheck(fineLimit))
	}
	return loansuc.New(p, loans, users, books, opts...)
}

// Media contains the uploads settings. Files are kept in Dir and are
// served under the BaseURL path.
type Media struct {
	Dir         string
	BaseURL     string `yaml:"base-url"`
	MaxFileSize *int64 `yaml:"max-file-size"`
}

// NewStorage creates the local media storage, creating its directory
// if needed.
func (m Media) NewStorage() (*local.Storage, error) {
	return local.New(m.Dir, m.BaseURL)
}

// NewUseCase instantiates a media use case over s.
func (m Media) NewUseCase(s repo.MediaStorage) (*mediauc.UseCase, error) {
	var opts []mediauc.Option
	if m.MaxFileSize != nil {
		opts = append(opts, mediauc.WithMaxFileSize(*m.MaxFileSize))
	}
	return mediauc.New(s, opts...)
}
