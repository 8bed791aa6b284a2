// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp implements the repo.Schema port for PostgreSQL.
// All role names are suffixed with the configured role suffix, so
// more than one deployment (or test) may share a DBMS server.
package schemarp

import (
	"context"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/core/repo"
	"github.com/momeni/lendweb/pkg/core/scram"
)

// Repo is the schema management repository.
type Repo struct {
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// New instantiates a schema repository. The hasher is used to hash
// the new passwords of roles before sending them to the DBMS.
func New(roleSuffix repo.Role, hasher scram.Hasher) *Repo {
	return &Repo{roleSuffix: roleSuffix, hasher: hasher}
}

// queryer serves the SchemaQueryer methods on a connection or a
// transaction alike.
type queryer[Q postgres.Queryer] struct {
	q      Q
	suffix repo.Role
}

type txQueryer struct {
	queryer[*postgres.Tx]
	hasher scram.Hasher
}

func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	return queryer[*postgres.Conn]{c.(*postgres.Conn), schema.roleSuffix}
}

func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	return txQueryer{
		queryer: queryer[*postgres.Tx]{tx.(*postgres.Tx), schema.roleSuffix},
		hasher:  schema.hasher,
	}
}

func (sq queryer[Q]) DropIfExists(ctx context.Context, s string) error {
	return DropIfExists(ctx, sq.q, s)
}

func (sq queryer[Q]) CreateSchema(ctx context.Context, s string) error {
	return CreateSchema(ctx, sq.q, s)
}

func (sq queryer[Q]) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, sq.q, sq.suffix, role)
}

func (sq queryer[Q]) GrantPrivileges(
	ctx context.Context, s string, role repo.Role,
) error {
	return GrantPrivileges(ctx, sq.q, sq.suffix, s, role)
}

func (sq queryer[Q]) SetSearchPath(
	ctx context.Context, s string, role repo.Role,
) error {
	return SetSearchPath(ctx, sq.q, sq.suffix, s, role)
}

func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(ctx, tq.q, tq.suffix, tq.hasher, roles, passwords)
}
