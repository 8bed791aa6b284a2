// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction. It must not be used
// concurrently. The use cases open a transaction whenever a check and
// its subsequent write must observe the same snapshot, e.g., creating
// a loan while decrementing the book inventory. The isolation level
// is the DBMS default, i.e., READ-COMMITTED for PostgreSQL, so unique
// indexes remain the final guard against concurrent duplicates.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
