// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansuc contains the loans UseCase which lends books to
// users and takes them back.
//
// A loan is created as ATIVO and becomes DEVOLVIDO when returned.
// The ATRASADO status is never stored. It is computed whenever an
// active loan is read after its due date.
//
// By default, creating a loan neither checks nor changes the book
// inventory and returning it does not give the book back to the
// shelf. The WithInventoryTracking option connects these two.
package loansuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/log"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// UseCase represents the loans use case.
type UseCase struct {
	pool    repo.Pool
	loansrp repo.Loans
	usersrp repo.Users
	booksrp repo.Books

	now            func() time.Time
	periodDays     int
	trackInventory bool
	fineLimit      *model.Money // nil disables the eligibility check
}

// New instantiates a loans use case.
func New(
	p repo.Pool, l repo.Loans, u repo.Users, b repo.Books,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, loansrp: l, usersrp: u, booksrp: b}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.periodDays == 0 {
		uc.periodDays = int(model.DefaultLoanPeriod / (24 * time.Hour))
	}
	return uc, nil
}

func (loans *UseCase) today() time.Time {
	return model.Today(loans.now())
}

func loanNotFound(err error, lid uuid.UUID) error {
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFoundf("loan not found with id: %s", lid)
	}
	return err
}

// Create use case lends the bid book to the uid user. The loan starts
// today and is due on dueDate, or after the loan period if dueDate is
// nil. Both the user and the book must exist.
func (loans *UseCase) Create(
	ctx context.Context, uid, bid uuid.UUID, dueDate *time.Time,
) (l *model.Loan, err error) {
	today := loans.today()
	due := today.AddDate(0, 0, loans.periodDays)
	if dueDate != nil {
		due = model.Today(*dueDate)
	}
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			u, err := loans.usersrp.Tx(tx).Get(ctx, uid)
			switch {
			case errors.Is(err, repo.ErrNotFound):
				return cerr.NotFoundf("user not found with id: %s", uid)
			case err != nil:
				return fmt.Errorf("loading user: %w", err)
			}
			bq := loans.booksrp.Tx(tx)
			b, err := bq.Get(ctx, bid)
			switch {
			case errors.Is(err, repo.ErrNotFound):
				return cerr.NotFoundf("book not found with id: %s", bid)
			case err != nil:
				return fmt.Errorf("loading book: %w", err)
			}
			if due.Before(today) {
				return cerr.Validationf(
					"due date %s is before the loan date %s",
					due.Format(time.DateOnly), today.Format(time.DateOnly),
				)
			}
			if loans.fineLimit != nil && !u.CanBorrowBooks(*loans.fineLimit) {
				return cerr.UnprocessableEntityf(
					"user %s is not allowed to borrow books", uid,
				)
			}
			if loans.trackInventory {
				if !b.IsAvailable() {
					return cerr.UnprocessableEntityf(
						"book %s is not available for loan", bid,
					)
				}
				b.AvailableQuantity--
				if _, err = bq.Update(ctx, b); err != nil {
					return fmt.Errorf("updating book inventory: %w", err)
				}
			}
			l, err = loans.loansrp.Tx(tx).Create(ctx, &model.Loan{
				UserID:   uid,
				BookID:   bid,
				LoanDate: today,
				DueDate:  due,
				Status:   model.LoanStatusActive,
			})
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "book lent",
		log.ID("loan", l.ID), log.ID("user", uid), log.ID("book", bid),
		log.Day("due", l.DueDate),
	)
	return l, nil
}

// Return use case marks the lid loan as returned today. Returning an
// already returned loan overwrites its return date.
func (loans *UseCase) Return(
	ctx context.Context, lid uuid.UUID,
) (l *model.Loan, err error) {
	today := loans.today()
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			lq := loans.loansrp.Tx(tx)
			old, err := lq.Get(ctx, lid)
			if err != nil {
				return loanNotFound(err, lid)
			}
			wasActive := old.Status == model.LoanStatusActive
			old.ReturnDate = &today
			old.Status = model.LoanStatusReturned
			if l, err = lq.Update(ctx, old); err != nil {
				return loanNotFound(err, lid)
			}
			if !loans.trackInventory || !wasActive {
				return nil
			}
			return loans.restock(ctx, loans.booksrp.Tx(tx), old.BookID)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "book returned", log.ID("loan", lid), log.Day("on", today))
	return l, nil
}

// restock increments the available quantity of the bid book, unless
// it is on the shelf already or the book is removed meanwhile.
func (loans *UseCase) restock(
	ctx context.Context, q repo.BooksTxQueryer, bid uuid.UUID,
) error {
	b, err := q.Get(ctx, bid)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("loading book: %w", err)
	case b.AvailableQuantity >= b.TotalQuantity:
		return nil
	}
	b.AvailableQuantity++
	if _, err = q.Update(ctx, b); err != nil {
		return fmt.Errorf("updating book inventory: %w", err)
	}
	return nil
}

// Get use case returns the lid loan with its effective status.
func (loans *UseCase) Get(
	ctx context.Context, lid uuid.UUID,
) (l *model.Loan, err error) {
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		l, err = loans.loansrp.Conn(c).Get(ctx, lid)
		return loanNotFound(err, lid)
	})
	if err != nil {
		return nil, err
	}
	l.Status = l.EffectiveStatus(loans.today())
	return l, nil
}

// List use case returns a page of loans, optionally filtered by their
// effective status and user. A non-empty status must be one of the
// ATIVO, DEVOLVIDO, or ATRASADO values (case-sensitive).
func (loans *UseCase) List(
	ctx context.Context, page model.Page, status string, uid *uuid.UUID,
) (*model.Paged[model.Loan], error) {
	today := loans.today()
	f := model.LoanFilter{UserID: uid, AsOf: today}
	if status != "" {
		s, err := model.ParseLoanStatus(status)
		if err != nil {
			return nil, cerr.BadRequest(err)
		}
		f.Status = &s
	}
	page = page.Normalize()
	res := &model.Paged[model.Loan]{Page: page.Number, Size: page.Size}
	err := loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		q := loans.loansrp.Conn(c)
		if res.Total, err = q.Count(ctx, f); err != nil {
			return fmt.Errorf("counting loans: %w", err)
		}
		res.Items, err = q.List(ctx, f, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	for i := range res.Items {
		res.Items[i].Status = res.Items[i].EffectiveStatus(today)
	}
	return res, nil
}

// Overdue use case returns the active loans which their due date is
// before the asOf day (or today if asOf is zero).
func (loans *UseCase) Overdue(
	ctx context.Context, asOf time.Time,
) (ll []model.Loan, err error) {
	if asOf.IsZero() {
		asOf = loans.now()
	}
	asOf = model.Today(asOf)
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ll, err = loans.loansrp.Conn(c).ListOverdue(ctx, asOf)
		return err
	})
	if err != nil {
		return nil, err
	}
	for i := range ll {
		ll[i].Status = model.LoanStatusOverdue
	}
	return ll, nil
}
