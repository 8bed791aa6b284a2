// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/model"
)

// Books is the books repository. It wraps a connection or transaction
// and returns a queryer which can run the books related queries.
type Books interface {
	Conn(Conn) BooksConnQueryer
	Tx(Tx) BooksTxQueryer
}

type BooksConnQueryer interface {
	BooksQueryer
}

type BooksTxQueryer interface {
	BooksQueryer
}

// BooksQueryer lists the books queries. Titles are compared with
// their stored (normalized) form case-insensitively.
type BooksQueryer interface {
	// Get returns the bid book, active or not, or ErrNotFound.
	Get(ctx context.Context, bid uuid.UUID) (*model.Book, error)

	// FindByISBN returns the book which holds the given normalized
	// isbn value, or ErrNotFound.
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)

	// ExistsByTitle reports whether a book other than the excluded
	// one has the given title. A uuid.Nil excluded ID excludes none.
	ExistsByTitle(
		ctx context.Context, title string, excluded uuid.UUID,
	) (bool, error)

	// List returns the page of books ordered by their titles.
	List(
		ctx context.Context, page model.Page, includeInactive bool,
	) ([]model.Book, error)

	// Count returns the total number of books which List may return.
	Count(ctx context.Context, includeInactive bool) (int, error)

	// Create inserts b, assigning its ID and timestamps, and returns
	// the stored book.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)

	// Update replaces all fields of the b.ID book but its CreatedAt.
	Update(ctx context.Context, b *model.Book) (*model.Book, error)

	// SoftDelete deactivates the bid book. It returns ErrNotFound if
	// the book does not exist or is already inactive.
	SoftDelete(ctx context.Context, bid uuid.UUID) error
}
