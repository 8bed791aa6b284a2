// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/model"
)

// Users is the users repository.
type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

// UsersQueryer lists the users queries. Emails are stored and
// compared in lower-case.
type UsersQueryer interface {
	Get(ctx context.Context, uid uuid.UUID) (*model.User, error)

	// ExistsByEmail reports whether a user other than the excluded
	// one has the given email. A uuid.Nil excluded ID excludes none.
	ExistsByEmail(
		ctx context.Context, email string, excluded uuid.UUID,
	) (bool, error)

	// List returns the page of users ordered by name. A non-empty
	// search matches users whose name or email contains it,
	// ignoring case.
	List(
		ctx context.Context, page model.Page, search string,
	) ([]model.User, error)

	// Count returns the total number of users which List may return.
	Count(ctx context.Context, search string) (int, error)

	Create(ctx context.Context, u *model.User) (*model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)

	// SoftDelete deactivates the uid user, or returns ErrNotFound.
	SoftDelete(ctx context.Context, uid uuid.UUID) error
}
