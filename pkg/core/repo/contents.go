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

// Contents is the editorial contents repository.
type Contents interface {
	Conn(Conn) ContentsConnQueryer
	Tx(Tx) ContentsTxQueryer
}

type ContentsConnQueryer interface {
	ContentsQueryer
}

type ContentsTxQueryer interface {
	ContentsQueryer
}

type ContentsQueryer interface {
	Get(ctx context.Context, cid uuid.UUID) (*model.Content, error)

	// List returns the page of matching contents, newest first.
	List(
		ctx context.Context, f model.ContentFilter, page model.Page,
	) ([]model.Content, error)

	Count(ctx context.Context, f model.ContentFilter) (int, error)
	Create(ctx context.Context, c *model.Content) (*model.Content, error)
	Update(ctx context.Context, c *model.Content) (*model.Content, error)

	// Delete removes the cid content, or returns ErrNotFound.
	Delete(ctx context.Context, cid uuid.UUID) error
}
