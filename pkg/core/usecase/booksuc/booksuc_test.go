// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksuc_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/internal/test/sqlitedb"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/usecase/booksuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BooksUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Books *booksuc.UseCase
}

func TestBooksUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &BooksUseCaseTestSuite{Ctx: context.Background()})
}

func (bucts *BooksUseCaseTestSuite) SetupTest() {
	p := sqlitedb.New(bucts.T())
	uc, err := booksuc.New(p, booksrp.New())
	bucts.Require().NoError(err, "cannot instantiate books use case")
	bucts.Books = uc
}

func fields(title, isbn string) model.BookFields {
	return model.BookFields{
		Title:             title,
		Author:            "Someone",
		ISBN:              isbn,
		Pages:             120,
		TotalQuantity:     2,
		AvailableQuantity: 2,
	}
}

func (bucts *BooksUseCaseTestSuite) create(title, isbn string) *model.Book {
	b, err := bucts.Books.Create(bucts.Ctx, fields(title, isbn))
	bucts.Require().NoError(err, "cannot create %q book", title)
	return b
}

func (bucts *BooksUseCaseTestSuite) TestCreateNormalizes() {
	b := bucts.create("  Dom   Casmurro ", "978-0-306-40615-7")
	bucts.NotEqual(uuid.Nil, b.ID)
	bucts.Equal("Dom Casmurro", b.Title)
	bucts.Equal("9780306406157", b.ISBN)
	bucts.True(b.Active)
	bucts.Equal(2, b.AvailableQuantity)
	bucts.False(b.CreatedAt.IsZero())

	got, err := bucts.Books.Get(bucts.Ctx, b.ID)
	bucts.Require().NoError(err)
	bucts.Equal(b.Title, got.Title)
	bucts.Equal(b.ISBN, got.ISBN)
}

func (bucts *BooksUseCaseTestSuite) TestCreateValidation() {
	tooLong := fields("Fine", "")
	tooLong.AvailableQuantity = 3
	noPages := fields("Fine", "")
	noPages.Pages = 0
	negative := fields("Fine", "")
	negative.TotalQuantity, negative.AvailableQuantity = -1, -1
	for name, bf := range map[string]model.BookFields{
		"blank title":         fields(" \t ", ""),
		"invalid isbn":        fields("Fine", "0306406153"),
		"available above all": tooLong,
		"no pages":            noPages,
		"negative quantities": negative,
	} {
		bucts.Run(name, func() {
			_, err := bucts.Books.Create(bucts.Ctx, bf)
			bucts.True(cerr.Is(err, cerr.KindValidation), "err: %v", err)
		})
	}
}

func (bucts *BooksUseCaseTestSuite) TestCreateDuplicates() {
	bucts.create("O Alquimista", "0-306-40615-2")

	_, err := bucts.Books.Create(bucts.Ctx, fields("o  ALQUIMISTA", ""))
	bucts.True(cerr.Is(err, cerr.KindConflict), "same title: %v", err)

	_, err = bucts.Books.Create(bucts.Ctx, fields("Other", "0306406152"))
	bucts.True(cerr.Is(err, cerr.KindConflict), "same isbn: %v", err)

	_, err = bucts.Books.Create(bucts.Ctx, fields("Another", ""))
	bucts.NoError(err, "books without ISBN do not collide")
	_, err = bucts.Books.Create(bucts.Ctx, fields("Yet Another", ""))
	bucts.NoError(err, "books without ISBN do not collide")
}

func (bucts *BooksUseCaseTestSuite) TestConcurrentCreateSameTitle() {
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = bucts.Books.Create(
				bucts.Ctx, fields("Memórias Póstumas", ""),
			)
		}()
	}
	wg.Wait()
	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case cerr.Is(err, cerr.KindConflict):
			conflicts++
		default:
			bucts.Failf("unexpected error", "%v", err)
		}
	}
	bucts.Equal(1, succeeded)
	bucts.Equal(1, conflicts)
}

func (bucts *BooksUseCaseTestSuite) TestUpdate() {
	b := bucts.create("Iracema", "")
	other := bucts.create("Senhora", "9780306406157")

	bf := fields("IRACEMA", "")
	bf.Pages = 200
	u, err := bucts.Books.Update(bucts.Ctx, b.ID, bf)
	bucts.Require().NoError(err, "changing the title case is allowed")
	bucts.Equal("IRACEMA", u.Title)
	bucts.Equal(200, u.Pages)
	bucts.True(u.Active)
	bucts.Equal(b.CreatedAt.Unix(), u.CreatedAt.Unix())

	_, err = bucts.Books.Update(bucts.Ctx, b.ID, fields("senhora", ""))
	bucts.True(cerr.Is(err, cerr.KindConflict), "taken title: %v", err)

	_, err = bucts.Books.Update(
		bucts.Ctx, b.ID, fields("Iracema", other.ISBN),
	)
	bucts.True(cerr.Is(err, cerr.KindConflict), "taken isbn: %v", err)

	_, err = bucts.Books.Update(bucts.Ctx, uuid.New(), fields("Lost", ""))
	bucts.True(cerr.Is(err, cerr.KindNotFound), "missing book: %v", err)
}

func (bucts *BooksUseCaseTestSuite) TestUpdateISBN() {
	b := bucts.create("Macunaíma", "")
	other := bucts.create("Vidas Secas", "0306406152")

	u, err := bucts.Books.UpdateISBN(bucts.Ctx, b.ID, "978 0 306 40615 7")
	bucts.Require().NoError(err)
	bucts.Equal("9780306406157", u.ISBN)

	_, err = bucts.Books.UpdateISBN(bucts.Ctx, b.ID, other.ISBN)
	bucts.True(cerr.Is(err, cerr.KindConflict), "taken isbn: %v", err)

	_, err = bucts.Books.UpdateISBN(bucts.Ctx, b.ID, "12345")
	bucts.True(cerr.Is(err, cerr.KindValidation), "bad isbn: %v", err)

	u, err = bucts.Books.UpdateISBN(bucts.Ctx, b.ID, "  ")
	bucts.Require().NoError(err, "blank isbn clears it")
	bucts.Empty(u.ISBN)
}

func (bucts *BooksUseCaseTestSuite) TestAddStock() {
	b := bucts.create("Grande Sertão", "")

	u, err := bucts.Books.AddStock(bucts.Ctx, b.ID, 3)
	bucts.Require().NoError(err)
	bucts.Equal(5, u.TotalQuantity)
	bucts.Equal(5, u.AvailableQuantity)

	for _, q := range []int{0, -2} {
		_, err = bucts.Books.AddStock(bucts.Ctx, b.ID, q)
		bucts.True(cerr.Is(err, cerr.KindValidation), "q=%d: %v", q, err)
	}
	_, err = bucts.Books.AddStock(bucts.Ctx, uuid.New(), 1)
	bucts.True(cerr.Is(err, cerr.KindNotFound), "missing book: %v", err)

	_, err = bucts.Books.AddStock(bucts.Ctx, b.ID, math.MaxInt-3)
	bucts.True(cerr.Is(err, cerr.KindValidation), "overflow: %v", err)
	got, err := bucts.Books.Get(bucts.Ctx, b.ID)
	bucts.Require().NoError(err)
	bucts.Equal(5, got.TotalQuantity, "rejected stock is not persisted")
	bucts.Equal(5, got.AvailableQuantity)
}

func (bucts *BooksUseCaseTestSuite) TestDeleteAndList() {
	a := bucts.create("A Moreninha", "")
	bucts.create("O Cortiço", "")
	bucts.create("O Guarani", "")

	bucts.Require().NoError(bucts.Books.Delete(bucts.Ctx, a.ID))
	err := bucts.Books.Delete(bucts.Ctx, a.ID)
	bucts.True(cerr.Is(err, cerr.KindNotFound), "deleted twice: %v", err)

	got, err := bucts.Books.Get(bucts.Ctx, a.ID)
	bucts.Require().NoError(err, "inactive books are still readable")
	bucts.False(got.Active)

	res, err := bucts.Books.List(bucts.Ctx, model.Page{}, false)
	bucts.Require().NoError(err)
	bucts.Equal(2, res.Total)
	bucts.Equal(model.DefaultPageSize, res.Size)
	bucts.Len(res.Items, 2)
	for _, b := range res.Items {
		bucts.True(b.Active)
	}

	res, err = bucts.Books.List(
		bucts.Ctx, model.Page{Number: 1, Size: 2}, true,
	)
	bucts.Require().NoError(err)
	bucts.Equal(3, res.Total)
	bucts.Equal(1, res.Page)
	bucts.Len(res.Items, 1, "the third book is on the second page")
}

func (bucts *BooksUseCaseTestSuite) TestGetMissing() {
	_, err := bucts.Books.Get(bucts.Ctx, uuid.New())
	bucts.True(cerr.Is(err, cerr.KindNotFound), "err: %v", err)
}

func TestOptions(t *testing.T) {
	_, err := booksuc.New(nil, nil, booksuc.WithMaxTitleLength(0))
	assert.Error(t, err)
	_, err = booksuc.New(nil, nil, booksuc.WithMaxTitleLength(256))
	assert.Error(t, err)
	_, err = booksuc.New(
		nil, nil, booksuc.WithMaxPages(10), booksuc.WithMaxPages(20),
	)
	assert.Error(t, err, "options may not be repeated")
	_, err = booksuc.New(nil, nil, booksuc.WithMaxTitleLength(10))
	assert.NoError(t, err)
}
