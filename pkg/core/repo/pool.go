// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo declares the persistence ports of the use cases layer.
// A Pool hands out connections, a connection may open transactions,
// and each entity repository (e.g., Books) wraps a connection or a
// transaction as a queryer which runs the entity specific queries.
// Repositories never return cerr errors. Absence is reported by the
// ErrNotFound sentinel and unique index violations by ErrDuplicate,
// so the use cases can translate them into their own error kinds.
package repo

import "context"

// ConnHandler is called with an acquired connection. The connection
// is released as soon as the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool.
type Pool interface {
	// Conn acquires a connection, passes it to the handler, and
	// releases it afterwards, returning the handler error.
	Conn(ctx context.Context, handler ConnHandler) error

	// Close closes all idle connections of the pool.
	Close() error
}
