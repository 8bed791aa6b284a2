// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksuc contains the books UseCase which manages the library
// catalog. It validates the book fields, detects duplicate titles and
// ISBN values, keeps the inventory quantities consistent, and
// deactivates books instead of deleting them.
package booksuc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/isbn"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/normalize"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// Limits of the book fields.
const (
	MaxTitleLength  = 255
	DefaultMaxPages = 10000
)

// UseCase represents the books use case. It holds a database
// connection pool, the books repository, and the validation limits.
type UseCase struct {
	pool    repo.Pool
	booksrp repo.Books

	maxTitleLength int
	maxPages       int
}

// New instantiates a books use case.
// Required parameters are passed individually, while the optional
// limits are passed as functional options.
func New(p repo.Pool, b repo.Books, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, booksrp: b}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.maxTitleLength == 0 {
		uc.maxTitleLength = MaxTitleLength
	}
	if uc.maxPages == 0 {
		uc.maxPages = DefaultMaxPages
	}
	return uc, nil
}

func (books *UseCase) inTx(
	ctx context.Context,
	f func(ctx context.Context, q repo.BooksTxQueryer) error,
) error {
	return books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return f(ctx, books.booksrp.Tx(tx))
		})
	})
}

func notFound(err error, bid uuid.UUID) error {
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFoundf("book not found with id: %s", bid)
	}
	return err
}

func duplicate(err error) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return cerr.Conflictf("book title or ISBN is already taken")
	}
	return err
}

// validate normalizes the title and ISBN of bf in place and verifies
// all fields of bf.
func (books *UseCase) validate(bf *model.BookFields) error {
	bf.Title = normalize.Title(bf.Title)
	switch n := utf8.RuneCountInString(bf.Title); {
	case n == 0:
		return cerr.Validationf("title is required")
	case n > books.maxTitleLength:
		return cerr.Validationf(
			"title must be at most %d characters", books.maxTitleLength,
		)
	}
	if bf.Pages < 1 || bf.Pages > books.maxPages {
		return cerr.Validationf(
			"pages must be between 1 and %d", books.maxPages,
		)
	}
	if bf.TotalQuantity < 0 || bf.AvailableQuantity < 0 {
		return cerr.Validationf("quantities must not be negative")
	}
	if bf.AvailableQuantity > bf.TotalQuantity {
		return cerr.Validationf(
			"available quantity (%d) cannot exceed total quantity (%d)",
			bf.AvailableQuantity, bf.TotalQuantity,
		)
	}
	if !isbn.Valid(bf.ISBN) {
		return cerr.Validationf("invalid ISBN: %q", bf.ISBN)
	}
	bf.ISBN = isbn.Normalize(bf.ISBN)
	return nil
}

// checkISBN returns a Conflict error if a book other than the bid
// book holds the given normalized isbn.
func checkISBN(
	ctx context.Context, q repo.BooksQueryer, isbn string, bid uuid.UUID,
) error {
	if isbn == "" {
		return nil
	}
	b, err := q.FindByISBN(ctx, isbn)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("finding book by ISBN: %w", err)
	case b.ID != bid:
		return cerr.Conflictf("a book with ISBN %s already exists", isbn)
	}
	return nil
}

func checkTitle(
	ctx context.Context, q repo.BooksQueryer, title string, bid uuid.UUID,
) error {
	exists, err := q.ExistsByTitle(ctx, title, bid)
	if err != nil {
		return fmt.Errorf("checking title uniqueness: %w", err)
	}
	if exists {
		return cerr.Conflictf("a book titled %q already exists", title)
	}
	return nil
}

// Create use case validates bf, ensures that neither its title nor
// its ISBN is taken, and stores it as an active book. The stored book
// (with its assigned ID and timestamps) is returned.
func (books *UseCase) Create(
	ctx context.Context, bf model.BookFields,
) (b *model.Book, err error) {
	if err = books.validate(&bf); err != nil {
		return nil, err
	}
	err = books.inTx(ctx, func(ctx context.Context, q repo.BooksTxQueryer) error {
		if err := checkISBN(ctx, q, bf.ISBN, uuid.Nil); err != nil {
			return err
		}
		if err := checkTitle(ctx, q, bf.Title, uuid.Nil); err != nil {
			return err
		}
		b, err = q.Create(ctx, fromFields(&model.Book{Active: true}, bf))
		return duplicate(err)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func fromFields(b *model.Book, bf model.BookFields) *model.Book {
	b.Title = bf.Title
	b.Author = bf.Author
	b.ISBN = bf.ISBN
	b.Genre = bf.Genre
	b.Pages = bf.Pages
	b.TotalQuantity = bf.TotalQuantity
	b.AvailableQuantity = bf.AvailableQuantity
	b.Summary = bf.Summary
	b.ImageURL = bf.ImageURL
	return b
}

// Get use case returns the bid book, whether it is active or not.
func (books *UseCase) Get(
	ctx context.Context, bid uuid.UUID,
) (b *model.Book, err error) {
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		b, err = books.booksrp.Conn(c).Get(ctx, bid)
		return notFound(err, bid)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List use case returns a page of books. Inactive books are skipped
// unless includeInactive is true.
func (books *UseCase) List(
	ctx context.Context, page model.Page, includeInactive bool,
) (*model.Paged[model.Book], error) {
	page = page.Normalize()
	res := &model.Paged[model.Book]{Page: page.Number, Size: page.Size}
	err := books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		q := books.booksrp.Conn(c)
		if res.Total, err = q.Count(ctx, includeInactive); err != nil {
			return fmt.Errorf("counting books: %w", err)
		}
		res.Items, err = q.List(ctx, page, includeInactive)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update use case replaces the fields of the bid book with bf after
// validating them. The title uniqueness is checked again only if the
// title is changed (ignoring case and whitespace differences). The
// active flag and creation time of the book are preserved.
func (books *UseCase) Update(
	ctx context.Context, bid uuid.UUID, bf model.BookFields,
) (b *model.Book, err error) {
	if err = books.validate(&bf); err != nil {
		return nil, err
	}
	err = books.inTx(ctx, func(ctx context.Context, q repo.BooksTxQueryer) error {
		old, err := q.Get(ctx, bid)
		if err != nil {
			return notFound(err, bid)
		}
		if !normalize.EqualTitles(old.Title, bf.Title) {
			if err := checkTitle(ctx, q, bf.Title, bid); err != nil {
				return err
			}
		}
		if bf.ISBN != old.ISBN {
			if err := checkISBN(ctx, q, bf.ISBN, bid); err != nil {
				return err
			}
		}
		b, err = q.Update(ctx, fromFields(old, bf))
		return duplicate(notFound(err, bid))
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateISBN use case replaces the ISBN of the bid book. A blank raw
// value clears the ISBN. It fails with a Conflict error if another
// book holds the same ISBN.
func (books *UseCase) UpdateISBN(
	ctx context.Context, bid uuid.UUID, raw string,
) (b *model.Book, err error) {
	if !isbn.Valid(raw) {
		return nil, cerr.Validationf("invalid ISBN: %q", raw)
	}
	n := isbn.Normalize(raw)
	err = books.inTx(ctx, func(ctx context.Context, q repo.BooksTxQueryer) error {
		old, err := q.Get(ctx, bid)
		if err != nil {
			return notFound(err, bid)
		}
		if err := checkISBN(ctx, q, n, bid); err != nil {
			return err
		}
		old.ISBN = n
		b, err = q.Update(ctx, old)
		return duplicate(notFound(err, bid))
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// AddStock use case increments both the total and available
// quantities of the bid book by the positive quantity.
func (books *UseCase) AddStock(
	ctx context.Context, bid uuid.UUID, quantity int,
) (b *model.Book, err error) {
	if quantity <= 0 {
		return nil, cerr.Validationf(
			"quantity to add must be positive, got %d", quantity,
		)
	}
	err = books.inTx(ctx, func(ctx context.Context, q repo.BooksTxQueryer) error {
		old, err := q.Get(ctx, bid)
		if err != nil {
			return notFound(err, bid)
		}
		if quantity > math.MaxInt-old.TotalQuantity {
			return cerr.Validationf(
				"adding %d copies overflows the total quantity", quantity,
			)
		}
		old.TotalQuantity += quantity
		old.AvailableQuantity += quantity
		b, err = q.Update(ctx, old)
		return notFound(err, bid)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete use case deactivates the bid book. Deleting a missing or an
// already inactive book fails with a NotFound error.
func (books *UseCase) Delete(ctx context.Context, bid uuid.UUID) error {
	return books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return notFound(books.booksrp.Conn(c).SoftDelete(ctx, bid), bid)
	})
}
