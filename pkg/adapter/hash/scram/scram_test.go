// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"testing"

	"github.com/momeni/lendweb/pkg/adapter/hash/scram"
	scrami "github.com/momeni/lendweb/pkg/core/scram"
	"github.com/stretchr/testify/require"
)

var _ scrami.Hasher = (*scram.Mechanism)(nil)

func TestHashAndVerify(t *testing.T) {
	for method, pattern := range map[string]string{
		"scram-sha-256": `^SCRAM-SHA-256\$4096:[A-Za-z0-9+/]{43}=\$[A-Za-z0-9+/=]{44}:[A-Za-z0-9+/=]{44}$`,
		"SCRAM-SHA-1":   `^SCRAM-SHA-1\$4096:[A-Za-z0-9+/]{27}=\$[A-Za-z0-9+/=]{28}:[A-Za-z0-9+/=]{28}$`,
	} {
		t.Run(method, func(t *testing.T) {
			r := require.New(t)
			m, err := scram.ForAuthMethod(method)
			r.NoError(err)
			h, err := m.Hash("s3cr3t", "", scram.MinIters)
			r.NoError(err)
			r.Regexp(pattern, h)

			ok, err := m.Verify("s3cr3t", h)
			r.NoError(err)
			r.True(ok)
			ok, err = m.Verify("S3cr3t", h)
			r.NoError(err)
			r.False(ok)

			h2, err := m.Hash("s3cr3t", "", scram.MinIters)
			r.NoError(err)
			r.NotEqual(h, h2, "salts are random")
		})
	}
}

func TestFixedSalt(t *testing.T) {
	r := require.New(t)
	m := scram.SHA256()
	h1, err := m.Hash("pass", "c2FsdA==", 5000)
	r.NoError(err)
	h2, err := m.Hash("pass", "c2FsdA==", 5000)
	r.NoError(err)
	r.Equal(h1, h2)
	r.Regexp(`^SCRAM-SHA-256\$5000:c2FsdA==\$`, h1)

	_, err = scram.SHA1().Verify("pass", h1)
	r.Error(err, "mechanism mismatch")
}

func TestHashErrors(t *testing.T) {
	m := scram.SHA256()
	for name, args := range map[string]struct {
		pass, salt string
		iters      int
	}{
		"empty password": {"", "", scram.MinIters},
		"few iterations": {"p", "", scram.MinIters - 1},
		"invalid salt":   {"p", "not base64!", scram.MinIters},
	} {
		_, err := m.Hash(args.pass, args.salt, args.iters)
		require.Error(t, err, name)
	}
	_, err := scram.ForAuthMethod("md5")
	require.Error(t, err)
}
