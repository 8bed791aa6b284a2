// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

// Tx is an ongoing transaction, created by Conn.Tx. It runs with
// READ-COMMITTED isolation on PostgreSQL and SERIALIZABLE on SQLite.
// It must not be used concurrently.
type Tx struct {
	session
}

func (tx *Tx) IsTx() {
}
