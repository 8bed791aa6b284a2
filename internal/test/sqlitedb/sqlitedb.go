// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlitedb is an internal helper for the test packages. It
// creates private in-memory SQLite databases with the lending tables,
// so the repositories and use cases can be tested without a running
// PostgreSQL server.
package sqlitedb

import (
	"context"
	"testing"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/adapter/db/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// New creates an empty database with the lending tables. It is closed
// when the t test finishes.
func New(t *testing.T) *postgres.Pool {
	return newPool(t, false)
}

// NewWithSamples creates a database like New and fills it with the
// sample books, users, and loans.
func NewWithSamples(t *testing.T) *postgres.Pool {
	return newPool(t, true)
}

func newPool(t *testing.T, dev bool) *postgres.Pool {
	t.Helper()
	ctx := context.Background()
	p, err := sqlite.NewPool(ctx, "")
	require.NoError(t, err, "cannot open in-memory database")
	t.Cleanup(func() {
		assert.NoError(t, p.Close(), "failed to close the database")
	})
	require.NoError(t, sqlite.InitSchema(ctx, p, dev), "cannot create tables")
	return p
}
