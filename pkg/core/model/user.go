// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFineLimit is the largest accumulated fines amount which still
// allows an active user to borrow books.
const DefaultFineLimit = Money(2000)

// User is a library member. Email is kept in lower-case and is unique
// among users.
type User struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	AccumulatedFines Money     `json:"accumulated_fines"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CanBorrowBooks reports whether u is active and its fines do not
// exceed the given limit.
func (u *User) CanBorrowBooks(limit Money) bool {
	return u.Active && u.AccumulatedFines <= limit
}

// HasFines reports whether u owes any fines.
func (u *User) HasFines() bool {
	return u.AccumulatedFines > 0
}

// UserFields contains the caller provided fields of a user. A nil
// Active means that the default (or existing) flag should be kept.
type UserFields struct {
	Name   string
	Email  string
	Phone  string
	Active *bool
}
