// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "errors"

var (
	// ErrNotFound indicates that no row matched the given identifier.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates that a write violated a unique index.
	ErrDuplicate = errors.New("duplicate key")
)
