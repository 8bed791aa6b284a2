// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksrp implements the repo.Books port using GORM.
package booksrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// Repo is the books repository. It is stateless and may be shared.
type Repo struct {
}

// New instantiates a books repository.
func New() *Repo {
	return &Repo{}
}

// queryer runs the books queries on a connection or a transaction.
type queryer[Q postgres.Queryer] struct {
	q Q
}

// Conn returns a books queryer which runs its queries on the c
// connection, which must be a *postgres.Conn instance.
func (books *Repo) Conn(c repo.Conn) repo.BooksConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

// Tx returns a books queryer which runs its queries in the tx
// transaction, which must be a *postgres.Tx instance.
func (books *Repo) Tx(tx repo.Tx) repo.BooksTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (bq queryer[Q]) Get(
	ctx context.Context, bid uuid.UUID,
) (*model.Book, error) {
	return Get(ctx, bq.q, bid)
}

func (bq queryer[Q]) FindByISBN(
	ctx context.Context, isbn string,
) (*model.Book, error) {
	return FindByISBN(ctx, bq.q, isbn)
}

func (bq queryer[Q]) ExistsByTitle(
	ctx context.Context, title string, excluded uuid.UUID,
) (bool, error) {
	return ExistsByTitle(ctx, bq.q, title, excluded)
}

func (bq queryer[Q]) List(
	ctx context.Context, page model.Page, includeInactive bool,
) ([]model.Book, error) {
	return List(ctx, bq.q, page, includeInactive)
}

func (bq queryer[Q]) Count(
	ctx context.Context, includeInactive bool,
) (int, error) {
	return Count(ctx, bq.q, includeInactive)
}

func (bq queryer[Q]) Create(
	ctx context.Context, b *model.Book,
) (*model.Book, error) {
	return Create(ctx, bq.q, b)
}

func (bq queryer[Q]) Update(
	ctx context.Context, b *model.Book,
) (*model.Book, error) {
	return Update(ctx, bq.q, b)
}

func (bq queryer[Q]) SoftDelete(ctx context.Context, bid uuid.UUID) error {
	return SoftDelete(ctx, bq.q, bid)
}
