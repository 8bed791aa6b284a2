// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package tables contains the GORM models of the lending tables.
// They are shared by the entity repositories, which convert them from
// and to the core model types, and by the schema initializer, which
// creates them.
package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/normalize"
)

// All lists one instance of each table model, in their creation order.
func All() []any {
	return []any{&Book{}, &User{}, &Loan{}, &Content{}}
}

// Book is a row of the books table. TitleKey keeps the case-folded
// title, so duplicate titles are rejected by a unique index. Folding
// may lengthen a title, e.g., ß becomes ss, so TitleKey is unsized.
type Book struct {
	ID                uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title             string    `gorm:"size:255;not null"`
	TitleKey          string    `gorm:"not null;uniqueIndex"`
	Author            string    `gorm:"size:255;not null;default:''"`
	ISBN              string    `gorm:"column:isbn;size:13;not null;default:''"`
	Genre             string    `gorm:"size:100;not null;default:''"`
	Pages             int       `gorm:"not null"`
	TotalQuantity     int       `gorm:"not null"`
	AvailableQuantity int       `gorm:"not null"`
	Summary           string    `gorm:"not null;default:''"`
	ImageURL          string    `gorm:"not null;default:''"`
	Active            bool      `gorm:"not null;index"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (*Book) TableName() string {
	return "books"
}

// NewBook converts b into a row. A nil b.ID is replaced by a random
// identifier.
func NewBook(b *model.Book) *Book {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Book{
		ID:                id,
		Title:             b.Title,
		TitleKey:          normalize.TitleKey(b.Title),
		Author:            b.Author,
		ISBN:              b.ISBN,
		Genre:             b.Genre,
		Pages:             b.Pages,
		TotalQuantity:     b.TotalQuantity,
		AvailableQuantity: b.AvailableQuantity,
		Summary:           b.Summary,
		ImageURL:          b.ImageURL,
		Active:            b.Active,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (gb *Book) Model() *model.Book {
	return &model.Book{
		ID:                gb.ID,
		Title:             gb.Title,
		Author:            gb.Author,
		ISBN:              gb.ISBN,
		Genre:             gb.Genre,
		Pages:             gb.Pages,
		TotalQuantity:     gb.TotalQuantity,
		AvailableQuantity: gb.AvailableQuantity,
		Summary:           gb.Summary,
		ImageURL:          gb.ImageURL,
		Active:            gb.Active,
		CreatedAt:         gb.CreatedAt.UTC(),
		UpdatedAt:         gb.UpdatedAt.UTC(),
	}
}

// User is a row of the users table. Fines are kept in cents.
type User struct {
	ID               uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name             string    `gorm:"size:255;not null;index"`
	Email            string    `gorm:"size:255;not null;uniqueIndex"`
	Phone            string    `gorm:"size:20;not null;default:''"`
	AccumulatedFines int64     `gorm:"not null;default:0"`
	Active           bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (*User) TableName() string {
	return "users"
}

func NewUser(u *model.User) *User {
	id := u.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &User{
		ID:               id,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		AccumulatedFines: int64(u.AccumulatedFines),
		Active:           u.Active,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (gu *User) Model() *model.User {
	return &model.User{
		ID:               gu.ID,
		Name:             gu.Name,
		Email:            gu.Email,
		Phone:            gu.Phone,
		AccumulatedFines: model.Money(gu.AccumulatedFines),
		Active:           gu.Active,
		CreatedAt:        gu.CreatedAt.UTC(),
		UpdatedAt:        gu.UpdatedAt.UTC(),
	}
}

// Loan is a row of the loans table. Only the ATIVO and DEVOLVIDO
// statuses are stored.
type Loan struct {
	ID         uuid.UUID  `gorm:"primaryKey;type:uuid"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	User       *User      `gorm:"constraint:OnDelete:RESTRICT"`
	BookID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Book       *Book      `gorm:"constraint:OnDelete:RESTRICT"`
	LoanDate   time.Time  `gorm:"type:date;not null"`
	DueDate    time.Time  `gorm:"type:date;not null;index"`
	ReturnDate *time.Time `gorm:"type:date"`
	Status     string     `gorm:"size:10;not null;index"`
}

func (*Loan) TableName() string {
	return "loans"
}

func NewLoan(l *model.Loan) *Loan {
	id := l.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Loan{
		ID:         id,
		UserID:     l.UserID,
		BookID:     l.BookID,
		LoanDate:   model.Today(l.LoanDate),
		DueDate:    model.Today(l.DueDate),
		ReturnDate: today(l.ReturnDate),
		Status:     l.Status.String(),
	}
}

func today(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := model.Today(*t)
	return &d
}

// Model converts gl into a loan. An unknown stored status is
// returned as an error.
func (gl *Loan) Model() (*model.Loan, error) {
	s, err := model.ParseLoanStatus(gl.Status)
	if err != nil {
		return nil, err
	}
	return &model.Loan{
		ID:         gl.ID,
		UserID:     gl.UserID,
		BookID:     gl.BookID,
		LoanDate:   model.Today(gl.LoanDate),
		DueDate:    model.Today(gl.DueDate),
		ReturnDate: today(gl.ReturnDate),
		Status:     s,
	}, nil
}

// Content is a row of the contents table. The media URLs are kept as
// a JSON array.
type Content struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title     string    `gorm:"size:255;not null"`
	Body      string    `gorm:"not null"`
	BodyJSON  string    `gorm:"column:body_json;not null;default:''"`
	Category  string    `gorm:"size:100;not null;default:''"`
	Status    string    `gorm:"size:20;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MediaURLs []string  `gorm:"column:media_urls;serializer:json;type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (*Content) TableName() string {
	return "contents"
}

func NewContent(c *model.Content) *Content {
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Content{
		ID:        id,
		Title:     c.Title,
		Body:      c.Body,
		BodyJSON:  c.BodyJSON,
		Category:  c.Category,
		Status:    string(c.Status),
		AuthorID:  c.AuthorID,
		MediaURLs: c.MediaURLs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (gc *Content) Model() *model.Content {
	return &model.Content{
		ID:        gc.ID,
		Title:     gc.Title,
		Body:      gc.Body,
		BodyJSON:  gc.BodyJSON,
		Category:  gc.Category,
		Status:    model.ContentStatus(gc.Status),
		AuthorID:  gc.AuthorID,
		MediaURLs: gc.MediaURLs,
		CreatedAt: gc.CreatedAt.UTC(),
		UpdatedAt: gc.UpdatedAt.UTC(),
	}
}
