// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Paging defaults and limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPageNumber   = 1 << 20
)

// Page identifies a zero-based page of a listing.
type Page struct {
	Number int
	Size   int
}

// Normalize replaces a non-positive size with DefaultPageSize and
// clamps it to MaxPageSize. The page number is clamped to the
// [0, MaxPageNumber] range, so Offset cannot overflow.
func (p Page) Normalize() Page {
	switch {
	case p.Number < 0:
		p.Number = 0
	case p.Number > MaxPageNumber:
		p.Number = MaxPageNumber
	}
	switch {
	case p.Size <= 0:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the number of items which precede this page.
func (p Page) Offset() int {
	return p.Number * p.Size
}

// Paged is one page of a listing of T items.
type Paged[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}
