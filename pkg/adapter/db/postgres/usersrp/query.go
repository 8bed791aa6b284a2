// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrp

import (
	"context"
	"fmt"
	"strings"
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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func Get[Q postgres.Queryer](
	ctx context.Context, q Q, uid uuid.UUID,
) (*model.User, error) {
	var gu tables.User
	err := q.GORM(ctx).Take(&gu, "id = ?", uid).Error
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gu.Model(), nil
}

func ExistsByEmail[Q postgres.Queryer](
	ctx context.Context, q Q, email string, excluded uuid.UUID,
) (bool, error) {
	gdb := q.GORM(ctx).Model(&tables.User{}).Where("email = ?", email)
	if excluded != uuid.Nil {
		gdb = gdb.Where("id <> ?", excluded)
	}
	var n int64
	if err := gdb.Count(&n).Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

// filter matches users whose name or email contains the lower-case
// search term. Emails are stored in lower-case already.
func filter(gdb *gorm.DB, search string) *gorm.DB {
	gdb = gdb.Model(&tables.User{})
	if search == "" {
		return gdb
	}
	pattern := "%" + likeEscaper.Replace(search) + "%"
	return gdb.Where(
		`(lower(name) LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\')`,
		pattern, pattern,
	)
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, page model.Page, search string,
) ([]model.User, error) {
	var gus []tables.User
	err := filter(q.GORM(ctx), search).Order(
		"name, id",
	).Offset(page.Offset()).Limit(page.Size).Find(&gus).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	us := make([]model.User, 0, len(gus))
	for i := range gus {
		us = append(us, *gus[i].Model())
	}
	return us, nil
}

func Count[Q postgres.Queryer](
	ctx context.Context, q Q, search string,
) (int, error) {
	var n int64
	if err := filter(q.GORM(ctx), search).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return int(n), nil
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, u *model.User,
) (*model.User, error) {
	gu := tables.NewUser(u)
	gu.CreatedAt = now()
	gu.UpdatedAt = gu.CreatedAt
	if err := q.GORM(ctx).Create(gu).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gu.Model(), nil
}

func Update[Q postgres.Queryer](
	ctx context.Context, q Q, u *model.User,
) (*model.User, error) {
	gu := tables.NewUser(u)
	gu.UpdatedAt = now()
	res := q.GORM(ctx).Model(&tables.User{}).Where(
		"id = ?", u.ID,
	).Select("*").Omit("id", "created_at").Updates(gu)
	if err := res.Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return Get(ctx, q, u.ID)
}

// SoftDelete deactivates the uid user. Deactivating an inactive user
// succeeds without a change.
func SoftDelete[Q postgres.Queryer](
	ctx context.Context, q Q, uid uuid.UUID,
) error {
	res := q.GORM(ctx).Model(&tables.User{}).Where(
		"id = ?", uid,
	).Updates(map[string]any{"active": false, "updated_at": now()})
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
