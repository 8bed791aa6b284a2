// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/internal/test/sqlitedb"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UsersUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Users *usersuc.UseCase
}

func TestUsersUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &UsersUseCaseTestSuite{Ctx: context.Background()})
}

// SetupTest creates a fresh database with the sample users. João has
// two active loans, Pedro has a returned loan, and Ana is inactive.
func (uucts *UsersUseCaseTestSuite) SetupTest() {
	p := sqlitedb.NewWithSamples(uucts.T())
	uc, err := usersuc.New(p, usersrp.New(), loansrp.New())
	uucts.Require().NoError(err, "cannot instantiate users use case")
	uucts.Users = uc
}

func (uucts *UsersUseCaseTestSuite) find(email string) *model.User {
	res, err := uucts.Users.List(uucts.Ctx, model.Page{}, email)
	uucts.Require().NoError(err, "cannot search users")
	uucts.Require().Len(res.Items, 1, "expected a single %q user", email)
	return &res.Items[0]
}

func boolAddr(b bool) *bool {
	return &b
}

func (uucts *UsersUseCaseTestSuite) TestCreate() {
	u, err := uucts.Users.Create(uucts.Ctx, model.UserFields{
		Name:  "  Lúcia Lima ",
		Email: " Lucia@Example.COM ",
		Phone: "+55 (11) 98765-4321",
	})
	uucts.Require().NoError(err)
	uucts.NotEqual(uuid.Nil, u.ID)
	uucts.Equal("Lúcia Lima", u.Name)
	uucts.Equal("lucia@example.com", u.Email)
	uucts.True(u.Active, "users are active by default")
	uucts.Zero(u.AccumulatedFines)

	u, err = uucts.Users.Create(uucts.Ctx, model.UserFields{
		Name: "Inactive", Email: "inactive@example.com", Active: boolAddr(false),
	})
	uucts.Require().NoError(err)
	uucts.False(u.Active)
}

func (uucts *UsersUseCaseTestSuite) TestCreateValidation() {
	for name, uf := range map[string]model.UserFields{
		"no name":       {Email: "a@example.com"},
		"no email":      {Name: "A"},
		"invalid email": {Name: "A", Email: "not-an-email"},
		"invalid phone": {Name: "A", Email: "a@example.com", Phone: "call me"},
	} {
		uucts.Run(name, func() {
			_, err := uucts.Users.Create(uucts.Ctx, uf)
			uucts.True(cerr.Is(err, cerr.KindValidation), "err: %v", err)
		})
	}
}

func (uucts *UsersUseCaseTestSuite) TestCreateDuplicateEmail() {
	_, err := uucts.Users.Create(uucts.Ctx, model.UserFields{
		Name: "Another João", Email: "JOAO@example.com",
	})
	uucts.True(cerr.Is(err, cerr.KindConflict), "err: %v", err)
}

func (uucts *UsersUseCaseTestSuite) TestList() {
	res, err := uucts.Users.List(uucts.Ctx, model.Page{}, "")
	uucts.Require().NoError(err)
	uucts.Equal(5, res.Total)
	uucts.Equal("Ana Costa", res.Items[0].Name, "ordered by name")

	res, err = uucts.Users.List(uucts.Ctx, model.Page{Size: 2}, "")
	uucts.Require().NoError(err)
	uucts.Equal(5, res.Total)
	uucts.Len(res.Items, 2)

	res, err = uucts.Users.List(uucts.Ctx, model.Page{}, " SANTOS ")
	uucts.Require().NoError(err)
	uucts.Equal(1, res.Total)
	uucts.Equal("maria@example.com", res.Items[0].Email)

	res, err = uucts.Users.List(uucts.Ctx, model.Page{}, "%")
	uucts.Require().NoError(err)
	uucts.Zero(res.Total, "wildcards are matched literally")
}

func (uucts *UsersUseCaseTestSuite) TestUpdate() {
	maria := uucts.find("maria@example.com")

	u, err := uucts.Users.Update(uucts.Ctx, maria.ID, model.UserFields{
		Name: "Maria S. Santos", Email: "maria@example.com",
	})
	uucts.Require().NoError(err)
	uucts.Equal("Maria S. Santos", u.Name)
	uucts.True(u.Active, "nil active keeps the flag")

	_, err = uucts.Users.Update(uucts.Ctx, maria.ID, model.UserFields{
		Name: "Maria", Email: "pedro@example.com",
	})
	uucts.True(cerr.Is(err, cerr.KindConflict), "taken email: %v", err)

	_, err = uucts.Users.Update(uucts.Ctx, uuid.New(), model.UserFields{
		Name: "Nobody", Email: "nobody@example.com",
	})
	uucts.True(cerr.Is(err, cerr.KindNotFound), "missing user: %v", err)
}

func (uucts *UsersUseCaseTestSuite) TestToggleActive() {
	ana := uucts.find("ana@example.com")
	uucts.Require().False(ana.Active)

	u, err := uucts.Users.ToggleActive(uucts.Ctx, ana.ID)
	uucts.Require().NoError(err)
	uucts.True(u.Active)
	u, err = uucts.Users.ToggleActive(uucts.Ctx, ana.ID)
	uucts.Require().NoError(err)
	uucts.False(u.Active)

	_, err = uucts.Users.ToggleActive(uucts.Ctx, uuid.New())
	uucts.True(cerr.Is(err, cerr.KindNotFound), "missing user: %v", err)
}

func (uucts *UsersUseCaseTestSuite) TestDelete() {
	joao := uucts.find("joao@example.com")
	err := uucts.Users.Delete(uucts.Ctx, joao.ID)
	uucts.True(
		cerr.Is(err, cerr.KindUnprocessableEntity),
		"user with active loans: %v", err,
	)

	pedro := uucts.find("pedro@example.com")
	uucts.Require().NoError(
		uucts.Users.Delete(uucts.Ctx, pedro.ID),
		"returned loans do not block the deletion",
	)
	u, err := uucts.Users.Get(uucts.Ctx, pedro.ID)
	uucts.Require().NoError(err)
	uucts.False(u.Active)

	err = uucts.Users.Delete(uucts.Ctx, uuid.New())
	uucts.True(cerr.Is(err, cerr.KindNotFound), "missing user: %v", err)
}

func (uucts *UsersUseCaseTestSuite) TestEligibility() {
	for email, eligible := range map[string]bool{
		"joao@example.com": true,
		"ana@example.com":  false,
	} {
		ok, err := uucts.Users.Eligibility(uucts.Ctx, uucts.find(email).ID)
		uucts.Require().NoError(err)
		uucts.Equal(eligible, ok, email)
	}
	_, err := uucts.Users.Eligibility(uucts.Ctx, uuid.New())
	uucts.True(cerr.Is(err, cerr.KindNotFound), "missing user: %v", err)
}

func TestFineLimitOption(t *testing.T) {
	uc, err := usersuc.New(nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultFineLimit, uc.FineLimit())

	uc, err = usersuc.New(nil, nil, nil, usersuc.WithFineLimit(500))
	assert.NoError(t, err)
	assert.Equal(t, model.Money(500), uc.FineLimit())

	_, err = usersuc.New(nil, nil, nil, usersuc.WithFineLimit(-1))
	assert.Error(t, err)
}

func TestCanBorrowBooks(t *testing.T) {
	u := model.User{Active: true, AccumulatedFines: 2000}
	assert.True(t, u.CanBorrowBooks(model.DefaultFineLimit), "at the limit")
	u.AccumulatedFines++
	assert.False(t, u.CanBorrowBooks(model.DefaultFineLimit))
	assert.True(t, u.HasFines())
	u = model.User{}
	assert.False(t, u.CanBorrowBooks(model.DefaultFineLimit), "inactive")
}
