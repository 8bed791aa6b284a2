// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package markup_test

import (
	"testing"

	"github.com/momeni/lendweb/pkg/adapter/markup"
	"github.com/momeni/lendweb/pkg/core/usecase/contentuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ contentuc.Markup = (*markup.Markup)(nil)

func TestRender(t *testing.T) {
	m := markup.New()
	html, err := m.Render("## Horário\n\n| dia | hora |\n|---|---|\n| seg | 9h |\n\n~~fechado~~")
	require.NoError(t, err)
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<del>fechado</del>")

	html, err = m.Render("linha um\nlinha dois")
	require.NoError(t, err)
	assert.Contains(t, html, "<br", "hard wraps are kept")
}

func TestSanitize(t *testing.T) {
	m := markup.New()
	for in, expected := range map[string]string{
		`<p>ok</p><script>alert(1)</script>`:      `<p>ok</p>`,
		`<a href="javascript:alert(1)">x</a>`:     `x`,
		`<img src="a.png" onerror="x()">`:         `<img src="a.png">`,
		`<img src="a.png" loading="lazy">`:        `<img src="a.png" loading="lazy">`,
		`<img src="a.png" loading="whenever">`:    `<img src="a.png">`,
		`<iframe src="https://x.test"></iframe>b`: `b`,
		`<pre class="language-go">x</pre>`:        `<pre class="language-go">x</pre>`,
	} {
		assert.Equal(t, expected, m.Sanitize(in), in)
	}
}
