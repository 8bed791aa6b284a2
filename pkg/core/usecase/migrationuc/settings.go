// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"

	"github.com/momeni/lendweb/pkg/core/repo"
)

// Settings represents the database-related settings which should be
// provided by a configuration file. It allows a database connection
// pool to be established for an asked role, creates the schema
// management repository and the schema initializers, and renews the
// roles passwords.
type Settings interface {
	// ConnectionPool creates a database connection pool for the r
	// role. Passwords are kept in a passwords file with lines in
	// this format:
	//
	//	host:port:dbname:role:password
	//
	// A second temporary passwords file may hold the new passwords
	// while they are being changed. If the main file passwords are
	// rejected and the temporary file passwords are accepted, the
	// temporary file is moved over the main file before returning.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer which creates
	// and fills the tables in the tx transaction.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates new passwords for the given roles,
	// records them in the temporary passwords file, and calls change
	// in order to update them in the database. The change function
	// runs in a transaction which may be committed after the
	// RenewPasswords returns. After a successful commit, the returned
	// finalizer must be called to move the temporary passwords file
	// over the main passwords file.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}
