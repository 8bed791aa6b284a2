// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package contentsrp implements the repo.Contents port using GORM.
package contentsrp

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

func (contents *Repo) Conn(c repo.Conn) repo.ContentsConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (contents *Repo) Tx(tx repo.Tx) repo.ContentsTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (cq queryer[Q]) Get(
	ctx context.Context, cid uuid.UUID,
) (*model.Content, error) {
	return Get(ctx, cq.q, cid)
}

func (cq queryer[Q]) List(
	ctx context.Context, f model.ContentFilter, page model.Page,
) ([]model.Content, error) {
	return List(ctx, cq.q, f, page)
}

func (cq queryer[Q]) Count(
	ctx context.Context, f model.ContentFilter,
) (int, error) {
	return Count(ctx, cq.q, f)
}

func (cq queryer[Q]) Create(
	ctx context.Context, c *model.Content,
) (*model.Content, error) {
	return Create(ctx, cq.q, c)
}

func (cq queryer[Q]) Update(
	ctx context.Context, c *model.Content,
) (*model.Content, error) {
	return Update(ctx, cq.q, c)
}

func (cq queryer[Q]) Delete(ctx context.Context, cid uuid.UUID) error {
	return Delete(ctx, cq.q, cid)
}
