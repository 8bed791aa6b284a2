// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansuc_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/internal/test/sqlitedb"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/usecase/booksuc"
	"github.com/momeni/lendweb/pkg/core/usecase/loansuc"
	"github.com/momeni/lendweb/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var today = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

type LoansUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Pool  *postgres.Pool
	Books *booksuc.UseCase
	Users *usersuc.UseCase

	user *model.User
	book *model.Book
}

func TestLoansUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &LoansUseCaseTestSuite{Ctx: context.Background()})
}

func (lucts *LoansUseCaseTestSuite) SetupTest() {
	r := lucts.Require()
	lucts.Pool = sqlitedb.New(lucts.T())
	var err error
	lucts.Books, err = booksuc.New(lucts.Pool, booksrp.New())
	r.NoError(err)
	lucts.Users, err = usersuc.New(lucts.Pool, usersrp.New(), loansrp.New())
	r.NoError(err)
	lucts.user, err = lucts.Users.Create(lucts.Ctx, model.UserFields{
		Name: "Clarice", Email: "clarice@example.com",
	})
	r.NoError(err)
	lucts.book, err = lucts.Books.Create(lucts.Ctx, model.BookFields{
		Title: "A Hora da Estrela", Pages: 88,
		TotalQuantity: 1, AvailableQuantity: 1,
	})
	r.NoError(err)
}

// loans instantiates a loans use case which observes the given day,
// e.g., lucts.loans(1) sees tomorrow.
func (lucts *LoansUseCaseTestSuite) loans(
	days int, opts ...loansuc.Option,
) *loansuc.UseCase {
	now := today.Add(13 * time.Hour).AddDate(0, 0, days)
	opts = append(opts, loansuc.WithClock(func() time.Time { return now }))
	uc, err := loansuc.New(
		lucts.Pool, loansrp.New(), usersrp.New(), booksrp.New(), opts...,
	)
	lucts.Require().NoError(err, "cannot instantiate loans use case")
	return uc
}

func (lucts *LoansUseCaseTestSuite) available() int {
	b, err := lucts.Books.Get(lucts.Ctx, lucts.book.ID)
	lucts.Require().NoError(err)
	return b.AvailableQuantity
}

func (lucts *LoansUseCaseTestSuite) TestCreateDefaults() {
	l, err := lucts.loans(0).Create(
		lucts.Ctx, lucts.user.ID, lucts.book.ID, nil,
	)
	lucts.Require().NoError(err)
	lucts.NotEqual(uuid.Nil, l.ID)
	lucts.Equal(model.LoanStatusActive, l.Status)
	lucts.True(today.Equal(l.LoanDate), "loan date: %v", l.LoanDate)
	lucts.True(
		today.AddDate(0, 0, 14).Equal(l.DueDate), "due date: %v", l.DueDate,
	)
	lucts.Nil(l.ReturnDate)
	lucts.Equal(1, lucts.available(), "inventory is not tracked")

	l, err = lucts.loans(0, loansuc.WithLoanPeriod(7*24*time.Hour)).Create(
		lucts.Ctx, lucts.user.ID, lucts.book.ID, nil,
	)
	lucts.Require().NoError(err, "unavailable books may be lent too")
	lucts.True(today.AddDate(0, 0, 7).Equal(l.DueDate))
}

func (lucts *LoansUseCaseTestSuite) TestCreateFailures() {
	uc := lucts.loans(0)
	_, err := uc.Create(lucts.Ctx, uuid.New(), lucts.book.ID, nil)
	lucts.True(cerr.Is(err, cerr.KindNotFound), "missing user: %v", err)
	lucts.ErrorContains(err, "user not found")

	_, err = uc.Create(lucts.Ctx, lucts.user.ID, uuid.New(), nil)
	lucts.True(cerr.Is(err, cerr.KindNotFound), "missing book: %v", err)
	lucts.ErrorContains(err, "book not found")

	yesterday := today.AddDate(0, 0, -1)
	_, err = uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, &yesterday)
	lucts.True(cerr.Is(err, cerr.KindValidation), "past due: %v", err)

	l, err := uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, &today)
	lucts.Require().NoError(err, "due today is acceptable")
	lucts.True(today.Equal(l.DueDate))
}

func (lucts *LoansUseCaseTestSuite) TestInventoryTracking() {
	uc := lucts.loans(0, loansuc.WithInventoryTracking())
	l, err := uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, nil)
	lucts.Require().NoError(err)
	lucts.Equal(0, lucts.available())

	_, err = uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, nil)
	lucts.True(
		cerr.Is(err, cerr.KindUnprocessableEntity), "no copies: %v", err,
	)

	r, err := uc.Return(lucts.Ctx, l.ID)
	lucts.Require().NoError(err)
	lucts.Equal(model.LoanStatusReturned, r.Status)
	lucts.Require().NotNil(r.ReturnDate)
	lucts.True(today.Equal(*r.ReturnDate))
	lucts.Equal(1, lucts.available())

	_, err = uc.Return(lucts.Ctx, l.ID)
	lucts.Require().NoError(err, "returning twice is accepted")
	lucts.Equal(1, lucts.available(), "a returned loan is not restocked")

	lucts.Require().NoError(lucts.Books.Delete(lucts.Ctx, lucts.book.ID))
	_, err = uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, nil)
	lucts.True(
		cerr.Is(err, cerr.KindUnprocessableEntity), "inactive book: %v", err,
	)
}

func (lucts *LoansUseCaseTestSuite) TestEligibilityCheck() {
	uc := lucts.loans(0, loansuc.WithEligibilityCheck(model.DefaultFineLimit))
	_, err := uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, nil)
	lucts.Require().NoError(err)

	_, err = lucts.Users.ToggleActive(lucts.Ctx, lucts.user.ID)
	lucts.Require().NoError(err)
	_, err = uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, nil)
	lucts.True(
		cerr.Is(err, cerr.KindUnprocessableEntity), "inactive user: %v", err,
	)

	_, err = lucts.loans(0).Create(
		lucts.Ctx, lucts.user.ID, lucts.book.ID, nil,
	)
	lucts.NoError(err, "eligibility is not checked by default")
}

func (lucts *LoansUseCaseTestSuite) TestReturnKeepsLoanFields() {
	l, err := lucts.loans(0).Create(
		lucts.Ctx, lucts.user.ID, lucts.book.ID, nil,
	)
	lucts.Require().NoError(err)

	r, err := lucts.loans(3).Return(lucts.Ctx, l.ID)
	lucts.Require().NoError(err)
	lucts.Equal(l.ID, r.ID)
	lucts.Equal(lucts.user.ID, r.UserID)
	lucts.Equal(lucts.book.ID, r.BookID)
	lucts.True(today.Equal(r.LoanDate), "loan date: %v", r.LoanDate)
	lucts.True(l.DueDate.Equal(r.DueDate), "due date: %v", r.DueDate)
	lucts.Require().NotNil(r.ReturnDate)
	lucts.True(
		today.AddDate(0, 0, 3).Equal(*r.ReturnDate),
		"return date: %v", *r.ReturnDate,
	)

	got, err := lucts.loans(4).Get(lucts.Ctx, l.ID)
	lucts.Require().NoError(err)
	lucts.Equal(lucts.user.ID, got.UserID)
	lucts.Equal(lucts.book.ID, got.BookID)
	lucts.True(today.Equal(got.LoanDate), "stored loan date: %v", got.LoanDate)
	lucts.Equal(model.LoanStatusReturned, got.Status)
}

func (lucts *LoansUseCaseTestSuite) TestReturnMissing() {
	_, err := lucts.loans(0).Return(lucts.Ctx, uuid.New())
	lucts.True(cerr.Is(err, cerr.KindNotFound), "err: %v", err)
	_, err = lucts.loans(0).Get(lucts.Ctx, uuid.New())
	lucts.True(cerr.Is(err, cerr.KindNotFound), "err: %v", err)
}

func (lucts *LoansUseCaseTestSuite) TestDerivedStatus() {
	uc := lucts.loans(0)
	due := today.AddDate(0, 0, 2)
	late, err := uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, &due)
	lucts.Require().NoError(err)
	onTime, err := uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, nil)
	lucts.Require().NoError(err)
	returned, err := uc.Create(lucts.Ctx, lucts.user.ID, lucts.book.ID, &due)
	lucts.Require().NoError(err)
	_, err = uc.Return(lucts.Ctx, returned.ID)
	lucts.Require().NoError(err)

	later := lucts.loans(3)
	l, err := later.Get(lucts.Ctx, late.ID)
	lucts.Require().NoError(err)
	lucts.Equal(model.LoanStatusOverdue, l.Status)
	l, err = later.Get(lucts.Ctx, returned.ID)
	lucts.Require().NoError(err)
	lucts.Equal(model.LoanStatusReturned, l.Status, "returned loans stay")
	l, err = uc.Get(lucts.Ctx, late.ID)
	lucts.Require().NoError(err)
	lucts.Equal(model.LoanStatusActive, l.Status, "not due yet")

	for status, id := range map[string]uuid.UUID{
		"ATIVO":     onTime.ID,
		"ATRASADO":  late.ID,
		"DEVOLVIDO": returned.ID,
	} {
		lucts.Run(status, func() {
			res, err := later.List(lucts.Ctx, model.Page{}, status, nil)
			lucts.Require().NoError(err)
			lucts.Require().Equal(1, res.Total)
			lucts.Require().Len(res.Items, 1)
			lucts.Equal(id, res.Items[0].ID)
			lucts.Equal(status, res.Items[0].Status.String())
		})
	}

	res, err := later.List(lucts.Ctx, model.Page{}, "", &lucts.user.ID)
	lucts.Require().NoError(err)
	lucts.Equal(3, res.Total)
	other := uuid.New()
	res, err = later.List(lucts.Ctx, model.Page{}, "", &other)
	lucts.Require().NoError(err)
	lucts.Zero(res.Total)

	_, err = later.List(lucts.Ctx, model.Page{}, "ativo", nil)
	lucts.True(cerr.Is(err, cerr.KindValidation), "lower-case: %v", err)

	overdue, err := later.Overdue(lucts.Ctx, time.Time{})
	lucts.Require().NoError(err)
	lucts.Require().Len(overdue, 1)
	lucts.Equal(late.ID, overdue[0].ID)
	lucts.Equal(model.LoanStatusOverdue, overdue[0].Status)

	overdue, err = later.Overdue(lucts.Ctx, due)
	lucts.Require().NoError(err)
	lucts.Empty(overdue, "due day itself is not overdue")
}

func TestOptions(t *testing.T) {
	for name, opts := range map[string][]loansuc.Option{
		"partial day":   {loansuc.WithLoanPeriod(36 * time.Hour)},
		"zero period":   {loansuc.WithLoanPeriod(0)},
		"nil clock":     {loansuc.WithClock(nil)},
		"negative fine": {loansuc.WithEligibilityCheck(-1)},
		"repeated": {
			loansuc.WithInventoryTracking(), loansuc.WithInventoryTracking(),
		},
	} {
		_, err := loansuc.New(nil, nil, nil, nil, opts...)
		assert.Error(t, err, name)
	}
}
