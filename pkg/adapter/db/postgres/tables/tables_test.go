// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tables_test

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres/tables"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestTitleKeyFitsFoldedTitles(t *testing.T) {
	r := require.New(t)
	s, err := schema.Parse(&tables.Book{}, &sync.Map{}, schema.NamingStrategy{})
	r.NoError(err)
	title := s.LookUpField("Title")
	r.NotNil(title)
	key := s.LookUpField("TitleKey")
	r.NotNil(key)
	r.Zero(key.Size, "title_key must not be limited like title")

	b := tables.NewBook(&model.Book{Title: strings.Repeat("ß", 200)})
	r.LessOrEqual(utf8.RuneCountInString(b.Title), title.Size)
	r.Greater(utf8.RuneCountInString(b.TitleKey), title.Size)
}
