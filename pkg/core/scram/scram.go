// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the Salted Challenge Response Authentication
// Mechanism (SCRAM) expectations of the use cases layer. The database
// initialization use case only needs to hash the passwords of the
// database roles before embedding them in the DDL statements, so a
// plaintext password never reaches the DBMS logs. The client and
// server conversations are handled by the DBMS and its driver.
package scram

// Hasher computes a SCRAM hash string for a fixed underlying hash
// function, e.g., SHA-256.
type Hasher interface {
	// Hash computes the stored and server keys of the pass password
	// using the base64 encoded salt (or a random one if salt is
	// empty) and iters PBKDF2 iterations which must be at least 4096.
	// The result follows this format:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// and is accepted by the PostgreSQL CREATE/ALTER ROLE statements.
	Hash(pass, salt string, iters int) (string, error)
}
