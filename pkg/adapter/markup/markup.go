// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package markup renders markdown with goldmark and sanitizes HTML
// with bluemonday. It implements the contentuc.Markup interface.
package markup

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	loadingValues  = regexp.MustCompile(`^(lazy|eager)$`)
	decodingValues = regexp.MustCompile(`^(sync|async|auto)$`)
)

// Markup keeps a configured markdown converter and HTML policy. It is
// safe for concurrent use.
type Markup struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New instantiates a Markup with the GitHub flavored markdown
// extensions and a user generated content policy which also accepts
// responsive images.
func New() *Markup {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	p := bluemonday.UGCPolicy()
	p.AllowElements("picture")
	p.AllowAttrs("srcset", "media", "type").OnElements("source")
	p.AllowAttrs("loading").Matching(loadingValues).OnElements("img")
	p.AllowAttrs("decoding").Matching(decodingValues).OnElements("img")
	p.AllowAttrs("class").Matching(
		bluemonday.SpaceSeparatedTokens,
	).OnElements("code", "span", "div", "pre")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return &Markup{md: md, policy: p}
}

// Render converts markdown into (unsanitized) HTML.
func (m *Markup) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Sanitize drops scripts, styles, frames, event handler attributes,
// and other unsafe constructs of htmlContent.
func (m *Markup) Sanitize(htmlContent string) string {
	return m.policy.Sanitize(htmlContent)
}
