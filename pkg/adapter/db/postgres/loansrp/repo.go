// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansrp implements the repo.Loans port using GORM.
// The ATRASADO status is not stored. Filters for it are translated
// into active loans which are due before the filter AsOf day.
package loansrp

import (
	"context"
	"time"

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

func (loans *Repo) Conn(c repo.Conn) repo.LoansConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (loans *Repo) Tx(tx repo.Tx) repo.LoansTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (lq queryer[Q]) Get(
	ctx context.Context, lid uuid.UUID,
) (*model.Loan, error) {
	return Get(ctx, lq.q, lid)
}

func (lq queryer[Q]) List(
	ctx context.Context, f model.LoanFilter, page model.Page,
) ([]model.Loan, error) {
	return List(ctx, lq.q, f, page)
}

func (lq queryer[Q]) Count(
	ctx context.Context, f model.LoanFilter,
) (int, error) {
	return Count(ctx, lq.q, f)
}

func (lq queryer[Q]) ListByUser(
	ctx context.Context, uid uuid.UUID,
) ([]model.Loan, error) {
	return ListByUser(ctx, lq.q, uid)
}

func (lq queryer[Q]) ListOverdue(
	ctx context.Context, asOf time.Time,
) ([]model.Loan, error) {
	return ListOverdue(ctx, lq.q, asOf)
}

func (lq queryer[Q]) Create(
	ctx context.Context, l *model.Loan,
) (*model.Loan, error) {
	return Create(ctx, lq.q, l)
}

func (lq queryer[Q]) Update(
	ctx context.Context, l *model.Loan,
) (*model.Loan, error) {
	return Update(ctx, lq.q, l)
}
