// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"database/sql"

	"github.com/momeni/lendweb/pkg/core/repo"
	"gorm.io/gorm"
)

// session holds the raw SQL methods which Conn and Tx share. The
// statements accept the GORM ? and @name placeholders.
type session struct {
	*gorm.DB
}

// Exec returns the number of affected rows.
func (s session) Exec(
	ctx context.Context, query string, args ...any,
) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected, res.Error
}

// Query returns the result set of query. No other statement may run in
// the same session until it is closed.
func (s session) Query(
	ctx context.Context, query string, args ...any,
) (repo.Rows, error) {
	rows, err := s.DB.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

// GORM is used by the entity repositories for their model queries.
func (s session) GORM(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx)
}

type sqlRows struct {
	*sql.Rows
}

// Close drops the close error since Err reports it too.
func (r sqlRows) Close() {
	_ = r.Rows.Close()
}
