// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/lendweb/pkg/adapter/config"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/contentsrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/lendweb/pkg/adapter/markup"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/booksrs"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/contentsrs"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/loansrs"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/mediars"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/lendweb/pkg/core/repo"
	"github.com/momeni/lendweb/pkg/core/usecase/contentuc"
)

// BasePath is the common prefix of all REST APIs.
const BasePath = "/api/lendweb/v1"

// Register instantiates the repositories and use cases based on the
// c configuration settings. The p connections pool is passed to the
// use case instances, so they may acquire/release connections and
// transactions on demand and pass them to the repositories.
// Each use case package is named like booksuc, each repository package
// is named like booksrp, and each resource package (which adapts a use
// case to the REST APIs) is named like booksrs. The resources are
// registered on the e engine and the stored media files are served
// under the configured media base URL.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	booksRepo := booksrp.New()
	usersRepo := usersrp.New()
	loansRepo := loansrp.New()

	books, err := c.Usecases.Books.NewUseCase(p, booksRepo)
	if err != nil {
		return fmt.Errorf("creating books use case: %w", err)
	}
	users, err := c.Usecases.Users.NewUseCase(p, usersRepo, loansRepo)
	if err != nil {
		return fmt.Errorf("creating users use case: %w", err)
	}
	loans, err := c.Usecases.Loans.NewUseCase(
		p, loansRepo, usersRepo, booksRepo, users.FineLimit(),
	)
	if err != nil {
		return fmt.Errorf("creating loans use case: %w", err)
	}
	contents := contentuc.New(p, contentsrp.New(), markup.New())
	storage, err := c.Usecases.Media.NewStorage()
	if err != nil {
		return fmt.Errorf("creating media storage: %w", err)
	}
	media, err := c.Usecases.Media.NewUseCase(storage)
	if err != nil {
		return fmt.Errorf("creating media use case: %w", err)
	}

	r := e.Group(BasePath)
	booksrs.Register(r, books)
	usersrs.Register(r, users)
	loansrs.Register(r, loans)
	contentsrs.Register(r, contents)
	mediars.Register(r, media)
	mediars.Serve(e, c.Usecases.Media.BaseURL, storage.Root())
	return nil
}
