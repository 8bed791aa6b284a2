// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/lendweb/pkg/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for name, expected := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		l, err := logger.ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, l, name)
	}
	_, err := logger.ParseLevel("trace")
	assert.Error(t, err)
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(logger.NewHandler(&buf, "JSON", slog.LevelInfo))
	l.DebugContext(context.Background(), "hidden")
	l.Info("loan created", slog.String("status", "ATIVO"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), buf.String())
	assert.Equal(t, "loan created", rec["msg"])
	assert.Equal(t, "ATIVO", rec["status"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(logger.NewHandler(&buf, "text", slog.LevelWarn))
	l.Info("hidden")
	l.Warn("slow query", slog.Int("ms", 250))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "slow query")
	assert.Contains(t, out, "ms=250")
	assert.NotContains(t, out, "\x1b[", "no colors for non-terminals")
}
