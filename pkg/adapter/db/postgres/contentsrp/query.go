// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package contentsrp

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

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func Get[Q postgres.Queryer](
	ctx context.Context, q Q, cid uuid.UUID,
) (*model.Content, error) {
	var gc tables.Content
	err := q.GORM(ctx).Take(&gc, "id = ?", cid).Error
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gc.Model(), nil
}

func filter(gdb *gorm.DB, f model.ContentFilter) *gorm.DB {
	gdb = gdb.Model(&tables.Content{})
	if f.AuthorID != nil {
		gdb = gdb.Where("author_id = ?", *f.AuthorID)
	}
	if f.Status != nil {
		gdb = gdb.Where("status = ?", string(*f.Status))
	}
	return gdb
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, f model.ContentFilter, page model.Page,
) ([]model.Content, error) {
	var gcs []tables.Content
	err := filter(q.GORM(ctx), f).Order(
		"created_at DESC, id",
	).Offset(page.Offset()).Limit(page.Size).Find(&gcs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	cs := make([]model.Content, 0, len(gcs))
	for i := range gcs {
		cs = append(cs, *gcs[i].Model())
	}
	return cs, nil
}

func Count[Q postgres.Queryer](
	ctx context.Context, q Q, f model.ContentFilter,
) (int, error) {
	var n int64
	if err := filter(q.GORM(ctx), f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, c *model.Content,
) (*model.Content, error) {
	gc := tables.NewContent(c)
	gc.CreatedAt = now()
	gc.UpdatedAt = gc.CreatedAt
	if err := q.GORM(ctx).Create(gc).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gc.Model(), nil
}

func Update[Q postgres.Queryer](
	ctx context.Context, q Q, c *model.Content,
) (*model.Content, error) {
	gc := tables.NewContent(c)
	gc.UpdatedAt = now()
	res := q.GORM(ctx).Model(&tables.Content{}).Where(
		"id = ?", c.ID,
	).Select("*").Omit("id", "created_at").Updates(gc)
	if err := res.Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return Get(ctx, q, c.ID)
}

func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, cid uuid.UUID,
) error {
	res := q.GORM(ctx).Delete(&tables.Content{}, "id = ?", cid)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
