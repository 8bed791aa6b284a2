// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry which may be lent to users. The ID and the
// timestamps are assigned by the books repository.
//
// After any use case level mutation, AvailableQuantity stays in the
// [0, TotalQuantity] range.
type Book struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Author            string    `json:"author,omitempty"`
	ISBN              string    `json:"isbn,omitempty"`
	Genre             string    `json:"genre,omitempty"`
	Pages             int       `json:"pages"`
	TotalQuantity     int       `json:"total_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	Summary           string    `json:"summary,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsAvailable reports whether b may be borrowed right now.
func (b *Book) IsAvailable() bool {
	return b.Active && b.AvailableQuantity > 0
}

// QuantityValid reports whether the inventory quantities of b are
// consistent with each other.
func (b *Book) QuantityValid() bool {
	return b.TotalQuantity >= 0 && b.AvailableQuantity >= 0 &&
		b.AvailableQuantity <= b.TotalQuantity
}

// BookFields contains the caller provided fields of a book which are
// used by the create and update use cases.
type BookFields struct {
	Title             string
	Author            string
	ISBN              string
	Genre             string
	Pages             int
	TotalQuantity     int
	AvailableQuantity int
	Summary           string
	ImageURL          string
}
