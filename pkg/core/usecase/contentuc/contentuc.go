// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package contentuc contains the contents UseCase which manages the
// editorial pages of the library (news, events, and reading tips).
// Bodies are accepted as markdown or HTML and are always stored as
// sanitized HTML.
package contentuc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// MaxTitleLength is the maximum number of characters of a title.
const MaxTitleLength = 255

// Markup converts the user provided bodies into safe HTML.
type Markup interface {
	// Render converts markdown source into HTML.
	Render(markdown string) (string, error)

	// Sanitize removes the unsafe elements and attributes of html.
	Sanitize(html string) string
}

// UseCase represents the contents use case.
type UseCase struct {
	pool       repo.Pool
	contentsrp repo.Contents
	markup     Markup
}

// New instantiates a contents use case.
func New(p repo.Pool, c repo.Contents, m Markup) *UseCase {
	return &UseCase{pool: p, contentsrp: c, markup: m}
}

func notFound(err error, cid uuid.UUID) error {
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFoundf("content not found with id: %s", cid)
	}
	return err
}

// prepare validates cf and returns the content which should be
// stored, having a sanitized HTML body.
func (contents *UseCase) prepare(cf model.ContentFields) (*model.Content, error) {
	body := cf.Body
	switch cf.Format {
	case "", model.ContentFormatHTML:
	case model.ContentFormatMarkdown:
		html, err := contents.markup.Render(body)
		if err != nil {
			return nil, cerr.Validationf("rendering markdown: %v", err)
		}
		body = html
	default:
		return nil, cerr.Validationf(
			"invalid content format %q. Must be one of: html, markdown",
			cf.Format,
		)
	}
	body = strings.TrimSpace(contents.markup.Sanitize(body))
	title := strings.TrimSpace(cf.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return nil, cerr.Validationf("title is required")
	case n > MaxTitleLength:
		return nil, cerr.Validationf(
			"title must be at most %d characters", MaxTitleLength,
		)
	}
	if body == "" {
		return nil, cerr.Validationf("body is required")
	}
	if cf.AuthorID == uuid.Nil {
		return nil, cerr.Validationf("author is required")
	}
	status, err := model.ParseContentStatus(cf.Status)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	return &model.Content{
		Title:     title,
		Body:      body,
		BodyJSON:  cf.BodyJSON,
		Category:  strings.TrimSpace(cf.Category),
		Status:    status,
		AuthorID:  cf.AuthorID,
		MediaURLs: cf.MediaURLs,
	}, nil
}

// Create use case sanitizes and stores a new content. The content is
// a draft unless another status is given.
func (contents *UseCase) Create(
	ctx context.Context, cf model.ContentFields,
) (c *model.Content, err error) {
	nc, err := contents.prepare(cf)
	if err != nil {
		return nil, err
	}
	err = contents.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		c, err = contents.contentsrp.Conn(conn).Create(ctx, nc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Get use case returns the cid content.
func (contents *UseCase) Get(
	ctx context.Context, cid uuid.UUID,
) (c *model.Content, err error) {
	err = contents.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		c, err = contents.contentsrp.Conn(conn).Get(ctx, cid)
		return notFound(err, cid)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List use case returns a page of contents, newest first.
func (contents *UseCase) List(
	ctx context.Context, f model.ContentFilter, page model.Page,
) (*model.Paged[model.Content], error) {
	page = page.Normalize()
	res := &model.Paged[model.Content]{Page: page.Number, Size: page.Size}
	err := contents.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) (err error) {
		q := contents.contentsrp.Conn(conn)
		if res.Total, err = q.Count(ctx, f); err != nil {
			return fmt.Errorf("counting contents: %w", err)
		}
		res.Items, err = q.List(ctx, f, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update use case replaces the cid content fields with cf.
func (contents *UseCase) Update(
	ctx context.Context, cid uuid.UUID, cf model.ContentFields,
) (c *model.Content, err error) {
	nc, err := contents.prepare(cf)
	if err != nil {
		return nil, err
	}
	err = contents.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := contents.contentsrp.Tx(tx)
			old, err := q.Get(ctx, cid)
			if err != nil {
				return notFound(err, cid)
			}
			nc.ID, nc.CreatedAt = old.ID, old.CreatedAt
			c, err = q.Update(ctx, nc)
			return notFound(err, cid)
		})
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Publish use case changes the status of the cid content to published.
func (contents *UseCase) Publish(
	ctx context.Context, cid uuid.UUID,
) (c *model.Content, err error) {
	err = contents.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := contents.contentsrp.Tx(tx)
			old, err := q.Get(ctx, cid)
			if err != nil {
				return notFound(err, cid)
			}
			old.Status = model.ContentStatusPublished
			c, err = q.Update(ctx, old)
			return notFound(err, cid)
		})
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete use case removes the cid content.
func (contents *UseCase) Delete(ctx context.Context, cid uuid.UUID) error {
	return contents.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return notFound(contents.contentsrp.Conn(conn).Delete(ctx, cid), cid)
	})
}
