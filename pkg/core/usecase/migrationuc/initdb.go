// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/lendweb/pkg/core/log"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// SchemaName is the name of the schema which keeps the lending tables.
const SchemaName = "lendweb"

// InitDBUseCase (re)creates the lendweb schema, either empty for the
// production or filled with the sample catalog for the development.
type InitDBUseCase struct {
	settings   Settings
	schemaRepo repo.Schema
}

func NewInitDB(ss Settings) *InitDBUseCase {
	return &InitDBUseCase{settings: ss, schemaRepo: ss.NewSchemaRepo()}
}

// InitProd runs in two phases. As the admin role, and in a single
// transaction, it replaces the lendweb schema with an empty one,
// ensures that the normal role exists and may use that schema, and
// renews both roles passwords. So a failed run may be repeated. Then
// as the normal role, it creates the books, users, loans, and
// contents tables in a second transaction.
func (iduc *InitDBUseCase) InitProd(ctx context.Context) error {
	return iduc.initDB(ctx, "prod", repo.SchemaInitializer.InitProdSchema)
}

// InitDev is similar to InitProd, but also inserts sample books,
// users, and loans.
func (iduc *InitDBUseCase) InitDev(ctx context.Context) error {
	return iduc.initDB(ctx, "dev", repo.SchemaInitializer.InitDevSchema)
}

func (iduc *InitDBUseCase) initDB(
	ctx context.Context, mode string,
	fill func(repo.SchemaInitializer, context.Context) error,
) error {
	if err := iduc.resetSchema(ctx); err != nil {
		return fmt.Errorf("resetting %q schema: %w", SchemaName, err)
	}
	p, err := iduc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("connecting as normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := iduc.settings.SchemaInitializer(tx)
			if err != nil {
				return fmt.Errorf("preparing schema initializer: %w", err)
			}
			return fill(si, ctx)
		})
	})
	if err != nil {
		return fmt.Errorf("filling %q schema: %w", SchemaName, err)
	}
	log.Info(
		ctx, "database is initialized",
		slog.String("schema", SchemaName), slog.String("mode", mode),
	)
	return nil
}

// resetSchema performs the admin phase of initDB.
func (iduc *InitDBUseCase) resetSchema(ctx context.Context) error {
	p, err := iduc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("connecting as admin role: %w", err)
	}
	defer p.Close()
	var commitPasswords func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := iduc.schemaRepo.Tx(tx)
			steps := []struct {
				name string
				run  func() error
			}{
				{"dropping schema", func() error {
					return q.DropIfExists(ctx, SchemaName)
				}},
				{"creating schema", func() error {
					return q.CreateSchema(ctx, SchemaName)
				}},
				{"creating normal role", func() error {
					return q.CreateRoleIfNotExists(ctx, repo.NormalRole)
				}},
				{"granting privileges", func() error {
					return q.GrantPrivileges(ctx, SchemaName, repo.NormalRole)
				}},
				{"setting search_path", func() error {
					return q.SetSearchPath(ctx, SchemaName, repo.NormalRole)
				}},
			}
			for _, s := range steps {
				if err := s.run(); err != nil {
					return fmt.Errorf("%s: %w", s.name, err)
				}
			}
			commitPasswords, err = iduc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("renewing passwords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	if err := commitPasswords(); err != nil {
		return fmt.Errorf("replacing passwords file: %w", err)
	}
	return nil
}
