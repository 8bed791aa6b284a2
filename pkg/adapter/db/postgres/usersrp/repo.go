// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp implements the repo.Users port using GORM.
package usersrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type queryer[Q postgres.Queryer] struct {
	q Q
}

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (uq queryer[Q]) Get(
	ctx context.Context, uid uuid.UUID,
) (*model.User, error) {
	return Get(ctx, uq.q, uid)
}

func (uq queryer[Q]) ExistsByEmail(
	ctx context.Context, email string, excluded uuid.UUID,
) (bool, error) {
	return ExistsByEmail(ctx, uq.q, email, excluded)
}

func (uq queryer[Q]) List(
	ctx context.Context, page model.Page, search string,
) ([]model.User, error) {
	return List(ctx, uq.q, page, search)
}

func (uq queryer[Q]) Count(ctx context.Context, search string) (int, error) {
	return Count(ctx, uq.q, search)
}

func (uq queryer[Q]) Create(
	ctx context.Context, u *model.User,
) (*model.User, error) {
	return Create(ctx, uq.q, u)
}

func (uq queryer[Q]) Update(
	ctx context.Context, u *model.User,
) (*model.User, error) {
	return Update(ctx, uq.q, u)
}

func (uq queryer[Q]) SoftDelete(ctx context.Context, uid uuid.UUID) error {
	return SoftDelete(ctx, uq.q, uid)
}
