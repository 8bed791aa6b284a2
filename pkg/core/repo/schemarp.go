// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer creates the books, users, loans, and contents
// tables in the (empty) schema of its wrapped transaction.
type SchemaInitializer interface {
	// InitDevSchema also inserts the sample catalog.
	InitDevSchema(ctx context.Context) error

	InitProdSchema(ctx context.Context) error
}

// Schema manages the schema and database roles which the lending
// repositories rely on. Only the initialization use case needs it.
type Schema interface {
	Conn(Conn) SchemaConnQueryer
	Tx(Tx) SchemaTxQueryer
}

type SchemaConnQueryer interface {
	SchemaQueryer
}

type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords sets passwords[i] for roles[i] (after adding
	// the configured role suffix). Both slices must be equally long.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer methods take trusted schema names, i.e., constants
// of the caller rather than user inputs. Role names are suffixed by
// the implementations as configured.
type SchemaQueryer interface {
	// DropIfExists drops schema without CASCADE, so it fails if the
	// schema still holds any table. A missing schema is ignored.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema fails if schema exists already.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates a LOGIN role without password.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL on schema to role.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath makes schema the sole default search_path of role.
	SetSearchPath(ctx context.Context, schema string, role Role) error
}
