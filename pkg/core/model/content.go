// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ContentStatus is the publication status of a content item. Its
// names are "rascunho" (draft) and "publicado" (published).
type ContentStatus string

// Known content statuses.
const (
	ContentStatusDraft     ContentStatus = "rascunho"
	ContentStatusPublished ContentStatus = "publicado"
)

// ErrUnknownContentStatus indicates an unknown content status name.
var ErrUnknownContentStatus = errors.New(
	"invalid content status. Must be one of: rascunho, publicado",
)

// ParseContentStatus parses a content status name. An empty name
// yields the ContentStatusDraft default status.
func ParseContentStatus(s string) (ContentStatus, error) {
	switch ContentStatus(s) {
	case "", ContentStatusDraft:
		return ContentStatusDraft, nil
	case ContentStatusPublished:
		return ContentStatusPublished, nil
	default:
		return "", ErrUnknownContentStatus
	}
}

// Content is an editorial item, e.g., a news post about the library.
// Body holds sanitized HTML. BodyJSON optionally keeps the editor
// document which produced Body.
type Content struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	BodyJSON  string        `json:"body_json,omitempty"`
	Category  string        `json:"category,omitempty"`
	Status    ContentStatus `json:"status"`
	AuthorID  uuid.UUID     `json:"author_id"`
	MediaURLs []string      `json:"media_urls,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ContentFormat tells how a content body is written.
type ContentFormat string

// Known content formats.
const (
	ContentFormatHTML     ContentFormat = "html"
	ContentFormatMarkdown ContentFormat = "markdown"
)

// ContentFields contains the caller provided fields of a content item.
type ContentFields struct {
	Title     string
	Body      string
	Format    ContentFormat
	BodyJSON  string
	Category  string
	Status    string
	AuthorID  uuid.UUID
	MediaURLs []string
}

// ContentFilter narrows a contents listing. Nil fields are ignored.
type ContentFilter struct {
	AuthorID *uuid.UUID
	Status   *ContentStatus
}
