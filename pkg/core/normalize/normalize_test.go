// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package normalize_test

import (
	"testing"

	"github.com/momeni/lendweb/pkg/core/normalize"
	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	assert.Equal(t, "Clean Code", normalize.Title("  Clean \t  Code\n"))
	assert.Equal(t, "Dune", normalize.Title("Dune"))
	assert.Equal(t, "", normalize.Title(" \t "))
	// e followed by a combining acute accent is composed into é
	assert.Equal(t, "Caf\u00e9", normalize.Title("Cafe\u0301"))
}

func TestEqualTitles(t *testing.T) {
	assert.True(t, normalize.EqualTitles("Dune", "  dune  "))
	assert.True(t, normalize.EqualTitles("The  Hobbit", "the hobbit"))
	assert.False(t, normalize.EqualTitles("Dune", "Dune Messiah"))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", normalize.Email(" ANA@EXAMPLE.com "))
}

func TestName(t *testing.T) {
	assert.Equal(t, "Ana Costa", normalize.Name("  Ana Costa "))
}
