// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides a database schema verifier which can be
// used for testing purposes. It checks that the lending tables can be
// queried by the repositories and that they contain the development
// or production suitable rows. The verifier works with both of the
// PostgreSQL and SQLite databases.
package schema

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/contentsrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Verifier wraps a database connection which is used for testing.
type Verifier struct {
	c repo.Conn
}

// New instantiates a Verifier, wrapping the c database connection.
func New(c repo.Conn) *Verifier {
	return &Verifier{c}
}

type counts struct {
	books, users, loans, contents int
}

func (v *Verifier) count(ctx context.Context, t *testing.T) (n counts) {
	t.Helper()
	var err error
	n.books, err = booksrp.New().Conn(v.c).Count(ctx, true)
	require.NoError(t, err, "books table")
	n.users, err = usersrp.New().Conn(v.c).Count(ctx, "")
	require.NoError(t, err, "users table")
	n.loans, err = loansrp.New().Conn(v.c).Count(ctx, model.LoanFilter{})
	require.NoError(t, err, "loans table")
	n.contents, err = contentsrp.New().Conn(v.c).Count(
		ctx, model.ContentFilter{},
	)
	require.NoError(t, err, "contents table")
	return n
}

// VerifySchema ensures that all lending tables can be queried.
// The existing rows are not checked.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	v.count(ctx, t)
}

// VerifyDevData checks for presence of the sample rows. Presence of
// extra rows is acceptable.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	n := v.count(ctx, t)
	assert.GreaterOrEqual(t, n.books, 5)
	assert.GreaterOrEqual(t, n.users, 5)
	assert.GreaterOrEqual(t, n.loans, 4)

	b, err := booksrp.New().Conn(v.c).FindByISBN(ctx, "9780451524935")
	if assert.NoError(t, err) {
		assert.Equal(t, "1984", b.Title)
		assert.Equal(t, 3, b.TotalQuantity)
		assert.Equal(t, 2, b.AvailableQuantity, "one copy is lent")
	}
	overdue, err := loansrp.New().Conn(v.c).ListOverdue(
		ctx, model.Today(time.Now()),
	)
	if assert.NoError(t, err) {
		assert.Len(t, overdue, 1)
	}
}

// VerifyProdData checks that the tables are empty.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	assert.Equal(t, counts{}, v.count(ctx, t))
}
