// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database initialization use case.
// InitDBUseCase prepares an empty lendweb schema using the admin
// role, renews the roles passwords, and fills the schema with the
// development or production suitable data using the normal role.
// This package also exposes the Settings interface which represents
// the expectations of this use case from the configuration files.
package migrationuc
