// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/tables"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/normalize"
	"github.com/momeni/lendweb/pkg/core/repo"
	"gorm.io/gorm"
)

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func Get[Q postgres.Queryer](
	ctx context.Context, q Q, bid uuid.UUID,
) (*model.Book, error) {
	var gb tables.Book
	err := q.GORM(ctx).Take(&gb, "id = ?", bid).Error
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gb.Model(), nil
}

func FindByISBN[Q postgres.Queryer](
	ctx context.Context, q Q, isbn string,
) (*model.Book, error) {
	var gb tables.Book
	err := q.GORM(ctx).Take(&gb, "isbn = ?", isbn).Error
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gb.Model(), nil
}

func ExistsByTitle[Q postgres.Queryer](
	ctx context.Context, q Q, title string, excluded uuid.UUID,
) (bool, error) {
	gdb := q.GORM(ctx).Model(&tables.Book{}).Where(
		"title_key = ?", normalize.TitleKey(title),
	)
	if excluded != uuid.Nil {
		gdb = gdb.Where("id <> ?", excluded)
	}
	var n int64
	if err := gdb.Count(&n).Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func filter(gdb *gorm.DB, includeInactive bool) *gorm.DB {
	gdb = gdb.Model(&tables.Book{})
	if !includeInactive {
		gdb = gdb.Where("active = ?", true)
	}
	return gdb
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, page model.Page, includeInactive bool,
) ([]model.Book, error) {
	var gbs []tables.Book
	err := filter(q.GORM(ctx), includeInactive).Order(
		"title_key, id",
	).Offset(page.Offset()).Limit(page.Size).Find(&gbs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	bs := make([]model.Book, 0, len(gbs))
	for i := range gbs {
		bs = append(bs, *gbs[i].Model())
	}
	return bs, nil
}

func Count[Q postgres.Queryer](
	ctx context.Context, q Q, includeInactive bool,
) (int, error) {
	var n int64
	err := filter(q.GORM(ctx), includeInactive).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, b *model.Book,
) (*model.Book, error) {
	gb := tables.NewBook(b)
	gb.CreatedAt = now()
	gb.UpdatedAt = gb.CreatedAt
	if err := q.GORM(ctx).Create(gb).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gb.Model(), nil
}

func Update[Q postgres.Queryer](
	ctx context.Context, q Q, b *model.Book,
) (*model.Book, error) {
	gb := tables.NewBook(b)
	gb.UpdatedAt = now()
	res := q.GORM(ctx).Model(&tables.Book{}).Where(
		"id = ?", b.ID,
	).Select("*").Omit("id", "created_at").Updates(gb)
	if err := res.Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return Get(ctx, q, b.ID)
}

func SoftDelete[Q postgres.Queryer](
	ctx context.Context, q Q, bid uuid.UUID,
) error {
	res := q.GORM(ctx).Model(&tables.Book{}).Where(
		"id = ? AND active = ?", bid, true,
	).Updates(map[string]any{"active": false, "updated_at": now()})
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
