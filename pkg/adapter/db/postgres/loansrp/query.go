// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/tables"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
	"gorm.io/gorm"
)

var (
	active   = model.LoanStatusActive.String()
	returned = model.LoanStatusReturned.String()
)

func models(gls []tables.Loan) ([]model.Loan, error) {
	ls := make([]model.Loan, 0, len(gls))
	for i := range gls {
		l, err := gls[i].Model()
		if err != nil {
			return nil, fmt.Errorf("loan %s: %w", gls[i].ID, err)
		}
		ls = append(ls, *l)
	}
	return ls, nil
}

func Get[Q postgres.Queryer](
	ctx context.Context, q Q, lid uuid.UUID,
) (*model.Loan, error) {
	var gl tables.Loan
	err := q.GORM(ctx).Take(&gl, "id = ?", lid).Error
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gl.Model()
}

// filter translates f into the where clauses. An ATIVO status only
// matches active loans which are not overdue as of f.AsOf, so each
// loan matches the filter of its effective status.
func filter(gdb *gorm.DB, f model.LoanFilter) *gorm.DB {
	gdb = gdb.Model(&tables.Loan{})
	if f.UserID != nil {
		gdb = gdb.Where("user_id = ?", *f.UserID)
	}
	if f.Status == nil {
		return gdb
	}
	asOf := model.Today(f.AsOf)
	switch *f.Status {
	case model.LoanStatusActive:
		gdb = gdb.Where("status = ? AND due_date >= ?", active, asOf)
	case model.LoanStatusOverdue:
		gdb = gdb.Where("status = ? AND due_date < ?", active, asOf)
	case model.LoanStatusReturned:
		gdb = gdb.Where("status = ?", returned)
	default:
		gdb = gdb.Where("1 = 0")
	}
	return gdb
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, f model.LoanFilter, page model.Page,
) ([]model.Loan, error) {
	var gls []tables.Loan
	err := filter(q.GORM(ctx), f).Order(
		"loan_date DESC, id",
	).Offset(page.Offset()).Limit(page.Size).Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gls)
}

func Count[Q postgres.Queryer](
	ctx context.Context, q Q, f model.LoanFilter,
) (int, error) {
	var n int64
	if err := filter(q.GORM(ctx), f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}

func ListByUser[Q postgres.Queryer](
	ctx context.Context, q Q, uid uuid.UUID,
) ([]model.Loan, error) {
	var gls []tables.Loan
	err := q.GORM(ctx).Where("user_id = ?", uid).Order(
		"loan_date DESC, id",
	).Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gls)
}

func ListOverdue[Q postgres.Queryer](
	ctx context.Context, q Q, asOf time.Time,
) ([]model.Loan, error) {
	var gls []tables.Loan
	err := q.GORM(ctx).Where(
		"due_date < ? AND status = ?", model.Today(asOf), active,
	).Order("due_date, id").Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gls)
}

// Create stores l. Overdue loans are stored as active.
func Create[Q postgres.Queryer](
	ctx context.Context, q Q, l *model.Loan,
) (*model.Loan, error) {
	gl, err := newLoan(l)
	if err != nil {
		return nil, err
	}
	if err := q.GORM(ctx).Create(gl).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gl.Model()
}

func newLoan(l *model.Loan) (*tables.Loan, error) {
	s := l.Status
	if s == model.LoanStatusOverdue {
		s = model.LoanStatusActive
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cl := *l
	cl.Status = s
	return tables.NewLoan(&cl), nil
}

func Update[Q postgres.Queryer](
	ctx context.Context, q Q, l *model.Loan,
) (*model.Loan, error) {
	gl, err := newLoan(l)
	if err != nil {
		return nil, err
	}
	res := q.GORM(ctx).Model(&tables.Loan{}).Where(
		"id = ?", l.ID,
	).Select(
		"user_id", "book_id", "loan_date", "due_date",
		"return_date", "status",
	).Updates(gl)
	if err := res.Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return Get(ctx, q, l.ID)
}
