// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration creates the lending tables and fills them with
// the initial data. The tables are created by the GORM auto-migration
// of the tables package models, so the same initializer serves both
// PostgreSQL and SQLite databases.
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/tables"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// indexes lists the indexes which GORM tags cannot express portably.
var indexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_books_isbn
	ON books (isbn) WHERE isbn <> ''`,
	`CREATE INDEX IF NOT EXISTS idx_loans_status_due_date
	ON loans (status, due_date)`,
}

// Initializer implements the repo.SchemaInitializer interface.
type Initializer struct {
	tx  *postgres.Tx
	now func() time.Time
}

// NewInitializer wraps the tx transaction, which must be a
// *postgres.Tx instance, as a schema initializer.
func NewInitializer(tx repo.Tx) (*Initializer, error) {
	tt, ok := tx.(*postgres.Tx)
	if !ok {
		return nil, fmt.Errorf("unsupported transaction type: %T", tx)
	}
	return &Initializer{tx: tt, now: time.Now}, nil
}

// InitProdSchema creates the empty tables.
func (i *Initializer) InitProdSchema(ctx context.Context) error {
	return i.createTables(ctx)
}

// InitDevSchema creates the tables and inserts sample books, users,
// and loans. The loan dates are relative to the current day.
func (i *Initializer) InitDevSchema(ctx context.Context) error {
	if err := i.createTables(ctx); err != nil {
		return err
	}
	return i.insertSamples(ctx)
}

func (i *Initializer) createTables(ctx context.Context) error {
	gdb := i.tx.GORM(ctx)
	if err := gdb.AutoMigrate(tables.All()...); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	for _, ddl := range indexes {
		if _, err := i.tx.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
