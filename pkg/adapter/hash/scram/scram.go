// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram hashes the passwords of the lendweb database roles in
// the SCRAM format which PostgreSQL stores for its scram-sha-256 (and
// the legacy scram-sha-1) authentication methods. The computation is
// delegated to the github.com/xdg-go/scram module.
package scram

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// MinIters is the least accepted number of PBKDF2 iterations.
const MinIters = 4096

// Mechanism is a SCRAM variant with a fixed hash function. It
// implements the pkg/core/scram.Hasher interface.
type Mechanism struct {
	gen     scram.HashGeneratorFcn
	saltLen int
	prefix  string
}

func SHA1() *Mechanism {
	return &Mechanism{gen: scram.SHA1, saltLen: 20, prefix: "SCRAM-SHA-1"}
}

func SHA256() *Mechanism {
	return &Mechanism{gen: scram.SHA256, saltLen: 32, prefix: "SCRAM-SHA-256"}
}

// ForAuthMethod returns the mechanism of a PostgreSQL password_encryption
// setting, i.e., scram-sha-256 or scram-sha-1.
func ForAuthMethod(method string) (*Mechanism, error) {
	switch strings.ToLower(method) {
	case "scram-sha-256":
		return SHA256(), nil
	case "scram-sha-1":
		return SHA1(), nil
	default:
		return nil, fmt.Errorf("unsupported auth method: %q", method)
	}
}

// Hash returns
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// for the pass password, after its SASLprep normalization. An empty
// salt is replaced by random bytes. Otherwise, salt must be base64
// encoded. The result may be embedded in CREATE/ALTER ROLE statements.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	if iters < MinIters {
		return "", fmt.Errorf("iters (%d) is less than %d", iters, MinIters)
	}
	var raw []byte
	if salt == "" {
		raw = make([]byte, m.saltLen)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		salt = base64.StdEncoding.EncodeToString(raw)
	} else {
		var err error
		if raw, err = base64.StdEncoding.DecodeString(salt); err != nil {
			return "", fmt.Errorf("decoding base64 salt: %w", err)
		}
	}
	c, err := m.gen.NewClient("lendweb", pass, "")
	if err != nil {
		return "", fmt.Errorf("preparing password: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt: string(raw), Iters: iters,
	})
	enc := base64.StdEncoding.EncodeToString
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.prefix, iters, salt, enc(sc.StoredKey), enc(sc.ServerKey),
	), nil
}

// Verify reports whether hashed was computed by m for pass.
func (m *Mechanism) Verify(pass, hashed string) (bool, error) {
	head, keys, ok := strings.Cut(hashed, ":")
	if !ok {
		return false, errors.New("malformed SCRAM hash")
	}
	prefix, itersSalt, ok := strings.Cut(head, "$")
	if !ok || prefix != m.prefix {
		return false, fmt.Errorf("not a %s hash", m.prefix)
	}
	salt, _, _ := strings.Cut(keys, "$")
	iters, err := strconv.Atoi(itersSalt)
	if err != nil {
		return false, fmt.Errorf("parsing iterations: %w", err)
	}
	h, err := m.Hash(pass, salt, iters)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(h), []byte(hashed)) == 1, nil
}
