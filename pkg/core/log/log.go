// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package log lets the core and adapter layers write structured logs
// with statically typed slog.Attr arguments, through whichever handler
// is installed as the slog default logger (see the adapter/logger
// package). Records carry the source position of the caller of the
// Debug, Info, Warn, and Error functions, not of this package.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	write(ctx, slog.LevelDebug, msg, attrs)
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	write(ctx, slog.LevelInfo, msg, attrs)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	write(ctx, slog.LevelWarn, msg, attrs)
}

func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	write(ctx, slog.LevelError, msg, attrs)
}

// write must be called directly by the exported functions, since it
// skips exactly one frame of this package when finding the caller.
func write(
	ctx context.Context, level slog.Level, msg string, attrs []slog.Attr,
) {
	l := slog.Default()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // Callers, write, and Info (or alike)
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
