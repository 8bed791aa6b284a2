// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"io"
)

// MediaStorage stores the uploaded media files. In contrast to the
// database repositories, it needs no connection.
type MediaStorage interface {
	// Store writes r contents under the key relative path. The key
	// must not exist already.
	Store(ctx context.Context, key string, r io.Reader) error

	// URL returns the public address of the key file.
	URL(key string) string

	// Delete removes the key file, or returns ErrNotFound.
	Delete(ctx context.Context, key string) error
}
