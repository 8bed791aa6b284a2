// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/core/repo"
	"github.com/momeni/lendweb/pkg/core/scram"
)

// PasswordIterations is the number of PBKDF2 iterations which are
// used for hashing the roles passwords.
const PasswordIterations = 4096

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// DropIfExists drops the schema without cascading. An existing and
// non-empty schema causes an error.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "DROP SCHEMA IF EXISTS "+ident(schema)+" RESTRICT")
	return err
}

func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "CREATE SCHEMA "+ident(schema))
	return err
}

// CreateRoleIfNotExists creates the suffixed role with the LOGIN
// attribute unless it exists already.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix, role repo.Role,
) error {
	r := string(role + roleSuffix)
	rows, err := q.Query(ctx, "SELECT 1 FROM pg_roles WHERE rolname=?", r)
	if err != nil {
		return fmt.Errorf("querying pg_roles: %w", err)
	}
	exists := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading pg_roles: %w", err)
	}
	if exists {
		return nil
	}
	_, err = q.Exec(ctx, "CREATE ROLE "+ident(r)+" WITH LOGIN")
	return err
}

func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"GRANT ALL PRIVILEGES ON SCHEMA %s TO %s",
		ident(schema), ident(string(role+roleSuffix)),
	))
	return err
}

func SetSearchPath[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s",
		ident(string(role+roleSuffix)), ident(schema),
	))
	return err
}

// ChangePasswords sets the passwords of the suffixed roles. Passwords
// are hashed before being embedded in the ALTER ROLE statements, so
// plaintext passwords never reach the DBMS logs.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles but %d passwords", len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", PasswordIterations)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", role, err)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD %s",
			ident(string(role+roleSuffix)), literal(h),
		))
		if err != nil {
			return fmt.Errorf("altering %q role: %w", role, err)
		}
	}
	return nil
}
