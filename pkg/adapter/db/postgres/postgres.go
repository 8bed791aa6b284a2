// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// ports using the GORM framework. The same types serve the PostgreSQL
// production databases and the SQLite databases which are opened by
// tests and the single-process demo mode, so the entity repositories
// (e.g., booksrp) are written once for both.
//
// The entity repositories convert the GORM and driver errors into the
// repo.ErrNotFound and repo.ErrDuplicate sentinels using the helpers
// of this package.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/lendweb/pkg/core/repo"
	"gorm.io/gorm"
)

// PostgreSQL error codes which are handled explicitly.
const (
	UniqueViolation  = "23505"
	CannotConnectNow = "57P03"
)

// TranslateError converts err into the repo sentinel errors when it
// reports a missing record or a unique index violation. Other errors
// (including nil) are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolation {
		return repo.ErrDuplicate
	}
	return err
}

// IsStartingUp reports whether err indicates that the PostgreSQL
// server is still starting up and may accept connections shortly.
func IsStartingUp(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CannotConnectNow
}
