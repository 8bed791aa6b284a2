// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoanStatus specifies the loan status enum. Although this enum is
// numeric, it is (de)serialized with its upper-case names, i.e., ATIVO,
// DEVOLVIDO, and ATRASADO which mean active, returned, and overdue.
//
// Only LoanStatusActive and LoanStatusReturned are persisted. The
// LoanStatusOverdue is derived from an active loan and its due date.
type LoanStatus int

// Valid values for the LoanStatus enum.
const (
	LoanStatusInvalid LoanStatus = iota // zero value is invalid

	LoanStatusActive   // ATIVO, the initial status
	LoanStatusReturned // DEVOLVIDO, the terminal status
	LoanStatusOverdue  // ATRASADO, an active loan past its due date
)

// ErrUnknownLoanStatus indicates that a given string may not be parsed
// as a known loan status.
var ErrUnknownLoanStatus = errors.New(
	"invalid loan status. Must be one of: ATIVO, DEVOLVIDO, ATRASADO",
)

// LoanStatusError indicates an invalid numeric loan status.
type LoanStatusError int

// Error implements the error interface.
func (e LoanStatusError) Error() string {
	return fmt.Sprintf("invalid loan status: %d", e)
}

// Validate returns nil if the LoanStatus value is valid.
func (s LoanStatus) Validate() error {
	switch s {
	case LoanStatusActive, LoanStatusReturned, LoanStatusOverdue:
		return nil
	default:
		return LoanStatusError(s)
	}
}

// String converts the LoanStatus enum to its name. Invalid loan
// status causes a panic.
func (s LoanStatus) String() string {
	switch s {
	case LoanStatusActive:
		return "ATIVO"
	case LoanStatusReturned:
		return "DEVOLVIDO"
	case LoanStatusOverdue:
		return "ATRASADO"
	default:
		panic(LoanStatusError(s))
	}
}

// ParseLoanStatus parses the given case-sensitive status name.
// For unknown names, LoanStatusInvalid and ErrUnknownLoanStatus
// will be returned.
func ParseLoanStatus(s string) (LoanStatus, error) {
	switch s {
	case "ATIVO":
		return LoanStatusActive, nil
	case "DEVOLVIDO":
		return LoanStatusReturned, nil
	case "ATRASADO":
		return LoanStatusOverdue, nil
	default:
		return LoanStatusInvalid, ErrUnknownLoanStatus
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s LoanStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LoanStatus) UnmarshalText(data []byte) error {
	v, err := ParseLoanStatus(string(data))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DefaultLoanPeriod is the time between the loan date and its expected
// return date when no explicit due date is asked.
const DefaultLoanPeriod = 14 * 24 * time.Hour

// Loan records that a user borrowed a book. Dates are calendar days,
// kept as UTC midnights.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	BookID     uuid.UUID  `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     LoanStatus `json:"status"`
}

// IsOverdue reports whether l is active while its due date is before
// the today calendar day.
func (l *Loan) IsOverdue(today time.Time) bool {
	return l.Status == LoanStatusActive && l.DueDate.Before(Today(today))
}

// EffectiveStatus returns the status of l as observed on the today
// calendar day, deriving LoanStatusOverdue for late active loans.
func (l *Loan) EffectiveStatus(today time.Time) LoanStatus {
	if l.IsOverdue(today) {
		return LoanStatusOverdue
	}
	return l.Status
}

// Today truncates t to the midnight of its calendar day in UTC.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoanFilter narrows a loans listing. Nil fields are not filtered.
// The AsOf day is used to derive the overdue status.
type LoanFilter struct {
	Status *LoanStatus
	UserID *uuid.UUID
	AsOf   time.Time
}
