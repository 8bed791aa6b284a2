// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres/tables"
	"github.com/momeni/lendweb/pkg/core/model"
)

func (i *Initializer) insertSamples(ctx context.Context) error {
	now := i.now().UTC().Truncate(time.Microsecond)
	today := model.Today(now)
	day := func(n int) time.Time {
		return today.AddDate(0, 0, n)
	}
	books := []*model.Book{
		{Title: "The Lord of the Rings", Author: "J. R. R. Tolkien", Pages: 1178},
		{Title: "The Hobbit", Author: "J. R. R. Tolkien", Pages: 310},
		{Title: "Harry Potter", Author: "J. K. Rowling", Pages: 223},
		{Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Pages: 328},
		{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", Pages: 464},
	}
	users := []*model.User{
		{Name: "João Silva", Email: "joao@example.com", Active: true},
		{Name: "Maria Santos", Email: "maria@example.com", Active: true},
		{Name: "Pedro Oliveira", Email: "pedro@example.com", Active: true},
		{Name: "Ana Costa", Email: "ana@example.com", Active: false},
		{Name: "Carlos Ferreira", Email: "carlos@example.com", Active: true},
	}
	gbs := make([]*tables.Book, len(books))
	for j, b := range books {
		b.TotalQuantity, b.AvailableQuantity = 3, 3
		b.Active, b.CreatedAt, b.UpdatedAt = true, now, now
		gbs[j] = tables.NewBook(b)
	}
	gus := make([]*tables.User, len(users))
	for j, u := range users {
		u.CreatedAt, u.UpdatedAt = now, now
		gus[j] = tables.NewUser(u)
	}
	returned := day(-5)
	loans := []*model.Loan{
		{
			UserID: gus[0].ID, BookID: gbs[0].ID,
			LoanDate: day(-5), DueDate: day(9),
			Status: model.LoanStatusActive,
		},
		{
			// overdue as its due date is passed
			UserID: gus[1].ID, BookID: gbs[1].ID,
			LoanDate: day(-10), DueDate: day(-3),
			Status: model.LoanStatusActive,
		},
		{
			UserID: gus[2].ID, BookID: gbs[2].ID,
			LoanDate: day(-20), DueDate: day(-6), ReturnDate: &returned,
			Status: model.LoanStatusReturned,
		},
		{
			UserID: gus[0].ID, BookID: gbs[3].ID,
			LoanDate: day(-2), DueDate: day(12),
			Status: model.LoanStatusActive,
		},
	}
	gls := make([]*tables.Loan, len(loans))
	for j, l := range loans {
		gls[j] = tables.NewLoan(l)
		if l.Status == model.LoanStatusActive {
			for _, gb := range gbs {
				if gb.ID == l.BookID {
					gb.AvailableQuantity--
				}
			}
		}
	}
	gdb := i.tx.GORM(ctx)
	if err := gdb.Create(gbs).Error; err != nil {
		return fmt.Errorf("inserting books: %w", err)
	}
	if err := gdb.Create(gus).Error; err != nil {
		return fmt.Errorf("inserting users: %w", err)
	}
	if err := gdb.Create(gls).Error; err != nil {
		return fmt.Errorf("inserting loans: %w", err)
	}
	return nil
}
