// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which registers the
// library members, keeps their emails unique, and decides if they may
// borrow books.
package usersuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/log"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/normalize"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// Length limits of the user fields, in characters.
const (
	MaxNameLength  = 255
	MaxEmailLength = 255
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{8,20}$`)
)

// UseCase represents the users use case. The loans repository is
// needed for checking the active loans of a user before deleting it.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	loansrp repo.Loans

	fineLimit *model.Money
}

// New instantiates a users use case.
func New(
	p repo.Pool, u repo.Users, l repo.Loans, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, usersrp: u, loansrp: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.fineLimit == nil {
		limit := model.DefaultFineLimit
		uc.fineLimit = &limit
	}
	return uc, nil
}

// FineLimit returns the configured fine limit.
func (users *UseCase) FineLimit() model.Money {
	return *users.fineLimit
}

func (users *UseCase) inTx(
	ctx context.Context,
	f func(ctx context.Context, q repo.UsersTxQueryer, tx repo.Tx) error,
) error {
	return users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return f(ctx, users.usersrp.Tx(tx), tx)
		})
	})
}

func notFound(err error, uid uuid.UUID) error {
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFoundf("user not found with id: %s", uid)
	}
	return err
}

func duplicate(err error, email string) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return cerr.Conflictf("a user with email %s already exists", email)
	}
	return err
}

func validate(uf *model.UserFields) error {
	uf.Name = normalize.Name(uf.Name)
	uf.Email = normalize.Email(uf.Email)
	uf.Phone = normalize.Name(uf.Phone)
	switch n := utf8.RuneCountInString(uf.Name); {
	case n == 0:
		return cerr.Validationf("name is required")
	case n > MaxNameLength:
		return cerr.Validationf(
			"name must be at most %d characters", MaxNameLength,
		)
	}
	switch n := utf8.RuneCountInString(uf.Email); {
	case n == 0:
		return cerr.Validationf("email is required")
	case n > MaxEmailLength:
		return cerr.Validationf(
			"email must be at most %d characters", MaxEmailLength,
		)
	}
	if !emailPattern.MatchString(uf.Email) {
		return cerr.Validationf("invalid email: %q", uf.Email)
	}
	if uf.Phone != "" && !phonePattern.MatchString(uf.Phone) {
		return cerr.Validationf("invalid phone: %q", uf.Phone)
	}
	return nil
}

func checkEmail(
	ctx context.Context, q repo.UsersQueryer, email string, uid uuid.UUID,
) error {
	exists, err := q.ExistsByEmail(ctx, email, uid)
	if err != nil {
		return fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return cerr.Conflictf("a user with email %s already exists", email)
	}
	return nil
}

// Create use case validates and normalizes uf and registers a new
// user with no fines. The user is active unless uf.Active is false.
func (users *UseCase) Create(
	ctx context.Context, uf model.UserFields,
) (u *model.User, err error) {
	if err = validate(&uf); err != nil {
		return nil, err
	}
	active := true
	if uf.Active != nil {
		active = *uf.Active
	}
	err = users.inTx(ctx, func(
		ctx context.Context, q repo.UsersTxQueryer, _ repo.Tx,
	) error {
		if err := checkEmail(ctx, q, uf.Email, uuid.Nil); err != nil {
			return err
		}
		u, err = q.Create(ctx, &model.User{
			Name:   uf.Name,
			Email:  uf.Email,
			Phone:  uf.Phone,
			Active: active,
		})
		return duplicate(err, uf.Email)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Get use case returns the uid user, whether it is active or not.
func (users *UseCase) Get(
	ctx context.Context, uid uuid.UUID,
) (u *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		u, err = users.usersrp.Conn(c).Get(ctx, uid)
		return notFound(err, uid)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List use case returns a page of users, ordered by their names.
// A non-blank search term filters them by name or email.
func (users *UseCase) List(
	ctx context.Context, page model.Page, search string,
) (*model.Paged[model.User], error) {
	page = page.Normalize()
	search = normalize.Search(search)
	res := &model.Paged[model.User]{Page: page.Number, Size: page.Size}
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		q := users.usersrp.Conn(c)
		if res.Total, err = q.Count(ctx, search); err != nil {
			return fmt.Errorf("counting users: %w", err)
		}
		res.Items, err = q.List(ctx, page, search)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update use case replaces the name, email, and phone of the uid
// user. The email uniqueness is checked only if it is changed. A nil
// uf.Active keeps the current active flag. Fines and the creation
// time are preserved.
func (users *UseCase) Update(
	ctx context.Context, uid uuid.UUID, uf model.UserFields,
) (u *model.User, err error) {
	if err = validate(&uf); err != nil {
		return nil, err
	}
	err = users.inTx(ctx, func(
		ctx context.Context, q repo.UsersTxQueryer, _ repo.Tx,
	) error {
		old, err := q.Get(ctx, uid)
		if err != nil {
			return notFound(err, uid)
		}
		if old.Email != uf.Email {
			if err := checkEmail(ctx, q, uf.Email, uid); err != nil {
				return err
			}
		}
		old.Name, old.Email, old.Phone = uf.Name, uf.Email, uf.Phone
		if uf.Active != nil {
			old.Active = *uf.Active
		}
		u, err = q.Update(ctx, old)
		return duplicate(notFound(err, uid), uf.Email)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ToggleActive use case flips the active flag of the uid user.
func (users *UseCase) ToggleActive(
	ctx context.Context, uid uuid.UUID,
) (u *model.User, err error) {
	err = users.inTx(ctx, func(
		ctx context.Context, q repo.UsersTxQueryer, _ repo.Tx,
	) error {
		old, err := q.Get(ctx, uid)
		if err != nil {
			return notFound(err, uid)
		}
		old.Active = !old.Active
		u, err = q.Update(ctx, old)
		return notFound(err, uid)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Delete use case deactivates the uid user. Users with an active loan
// (including the overdue ones) cannot be deleted.
func (users *UseCase) Delete(ctx context.Context, uid uuid.UUID) error {
	return users.inTx(ctx, func(
		ctx context.Context, q repo.UsersTxQueryer, tx repo.Tx,
	) error {
		if _, err := q.Get(ctx, uid); err != nil {
			return notFound(err, uid)
		}
		loans, err := users.loansrp.Tx(tx).ListByUser(ctx, uid)
		if err != nil {
			return fmt.Errorf("listing user loans: %w", err)
		}
		for _, l := range loans {
			if l.Status == model.LoanStatusActive {
				return cerr.UnprocessableEntityf(
					"cannot delete user with active loans",
				)
			}
		}
		return notFound(q.SoftDelete(ctx, uid), uid)
	})
}

// Eligibility use case reports whether the uid user may borrow books,
// i.e., it is active and its fines do not exceed the fine limit.
func (users *UseCase) Eligibility(
	ctx context.Context, uid uuid.UUID,
) (bool, error) {
	u, err := users.Get(ctx, uid)
	if err != nil {
		return false, err
	}
	ok := u.CanBorrowBooks(*users.fineLimit)
	if !ok {
		log.Debug(
			ctx, "user may not borrow books",
			log.ID("user", uid), slog.Bool("active", u.Active),
			log.Valuer("fines", u.AccumulatedFines),
			log.Valuer("limit", *users.fineLimit),
		)
	}
	return ok, nil
}
