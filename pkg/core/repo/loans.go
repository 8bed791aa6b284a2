// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/model"
)

// Loans is the loans repository.
type Loans interface {
	Conn(Conn) LoansConnQueryer
	Tx(Tx) LoansTxQueryer
}

type LoansConnQueryer interface {
	LoansQueryer
}

type LoansTxQueryer interface {
	LoansQueryer
}

// LoansQueryer lists the loans queries. The persisted status of a
// loan is either model.LoanStatusActive or model.LoanStatusReturned.
// A filter with model.LoanStatusOverdue matches active loans which
// their due date is before the filter AsOf day.
type LoansQueryer interface {
	Get(ctx context.Context, lid uuid.UUID) (*model.Loan, error)

	// List returns the page of matching loans, the most recent loan
	// dates first.
	List(
		ctx context.Context, f model.LoanFilter, page model.Page,
	) ([]model.Loan, error)

	// Count returns the total number of loans which List may return.
	Count(ctx context.Context, f model.LoanFilter) (int, error)

	// ListByUser returns all loans of the uid user.
	ListByUser(ctx context.Context, uid uuid.UUID) ([]model.Loan, error)

	// ListOverdue returns active loans which their due date is before
	// the asOf day, the oldest due dates first.
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.Loan, error)

	Create(ctx context.Context, l *model.Loan) (*model.Loan, error)

	// Update replaces all fields of the l.ID loan.
	Update(ctx context.Context, l *model.Loan) (*model.Loan, error)
}
