// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/log"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	r := require.New(t)
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.Background()
	lid := uuid.New()
	log.Debug(ctx, "hidden")
	log.Info(
		ctx, "loan returned",
		log.ID("loan", lid),
		log.Day("on", time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)),
		log.Valuer("fine", model.Cents(250)),
		log.Err("err", nil),
		log.Err("cause", errors.New("late")),
	)

	var rec struct {
		Msg    string `json:"msg"`
		Loan   string `json:"loan"`
		On     string `json:"on"`
		Fine   string `json:"fine"`
		Err    string `json:"err"`
		Cause  string `json:"cause"`
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}
	r.NoError(json.Unmarshal(buf.Bytes(), &rec), buf.String())
	r.Equal("loan returned", rec.Msg)
	r.Equal(lid.String(), rec.Loan)
	r.Equal("2024-03-10", rec.On)
	r.Equal("2.50", rec.Fine)
	r.Equal("no-error", rec.Err)
	r.Equal("late", rec.Cause)
	r.Contains(rec.Source.File, "log_test.go", "caller is reported")
}
