// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlite opens SQLite databases behind the postgres.Pool type,
// so the GORM repositories can run without a PostgreSQL server. It is
// used by the tests and the single-process demo mode of the server.
package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/migration"
	"github.com/momeni/lendweb/pkg/core/repo"
	"gorm.io/driver/sqlite"
)

// NewPool opens the SQLite database file at path, or a fresh private
// in-memory database if path is empty. Foreign keys are enforced.
func NewPool(ctx context.Context, path string) (*postgres.Pool, error) {
	dsn := "file:" + path + "?_fk=1&_busy_timeout=5000"
	if path == "" {
		dsn = fmt.Sprintf(
			"file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString(),
		)
	}
	p, err := postgres.Open(ctx, sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	db, err := p.DB.DB()
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("obtaining sql.DB: %w", err)
	}
	// one writer at a time, and in-memory databases live as long as
	// their last connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return p, nil
}

// InitSchema creates the lending tables in the p database, if they do
// not exist, and inserts the sample rows if dev is true.
func InitSchema(ctx context.Context, p *postgres.Pool, dev bool) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := migration.NewInitializer(tx)
			if err != nil {
				return err
			}
			if dev {
				return si.InitDevSchema(ctx)
			}
			return si.InitProdSchema(ctx)
		})
	})
}
