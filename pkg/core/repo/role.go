// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role names a database role which a connection pool logs in with.
// Its password is read from the passwords file of the configuration
// (see migrationuc.Settings.ConnectionPool).
type Role string

const (
	// AdminRole must be created manually with the SUPERUSER option.
	// It is only used for (re)creating the schema and NormalRole.
	AdminRole Role = "admin"

	// NormalRole owns the lending tables and runs every query of the
	// books, users, loans, contents, and media use cases.
	NormalRole Role = "lendweb"
)
