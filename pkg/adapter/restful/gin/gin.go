// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine and the middlewares which
// the lendweb server installs on it. Resource packages (named like
// booksrs) live in its sub-packages and are registered by the routes
// package.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type (
	HandlerFunc = gin.HandlerFunc
	Engine      = gin.Engine
)

// New creates a gin engine without any default middleware and
// installs the given middlewares on it, in order.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs each request with l.
func Logger(l *slog.Logger) HandlerFunc {
	return logger.New(l)
}

// Recovery returns a middleware which turns panics into 500 responses
// and logs them with l.
func Recovery(l *slog.Logger) HandlerFunc {
	return recovery.New(l)
}
