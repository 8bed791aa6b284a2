// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/momeni/lendweb/pkg/adapter/config/settings"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin"
)

// DefaultAddress is the listening address of the HTTP server.
const DefaultAddress = ":8080"

// Gin contains the HTTP server settings. The Logger and Recovery
// pointers are nil when omitted, and then take their true defaults.
type Gin struct {
	Address  string // host:port to listen on
	Logger   *bool  // Whether to log the requests
	Recovery *bool  // Whether to recover from the handler panics
	CORS     CORS   `yaml:"cors"`
}

// CORS contains the browser cross-origin access settings.
type CORS struct {
	// AllowedOrigins lists the accepted Origin header values.
	// Empty list accepts all origins.
	AllowedOrigins []string           `yaml:"allowed-origins"`
	MaxAge         *settings.Duration `yaml:"max-age"`
}

// ValidateAndNormalize fills the omitted settings with defaults and
// verifies the address and CORS max-age.
func (g *Gin) ValidateAndNormalize() error {
	if g.Address == "" {
		g.Address = DefaultAddress
	}
	if _, _, err := net.SplitHostPort(g.Address); err != nil {
		return fmt.Errorf("invalid address %q: %w", g.Address, err)
	}
	settings.Default(&g.Logger, true)
	settings.Default(&g.Recovery, true)
	settings.Default(&g.CORS.MaxAge, settings.Duration(gin.DefaultCORSMaxAge))
	return settings.VerifyRange(
		"gin.cors.max-age", g.CORS.MaxAge,
		settings.Duration(time.Second), settings.Duration(settings.Day),
	)
}

// NewEngine instantiates a gin-gonic engine based on the g settings.
// The CORS middleware comes first, so preflight requests are answered
// before reaching the routes.
func (g Gin) NewEngine(l *slog.Logger) *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 3)
	middlewares = append(middlewares, gin.CORS(gin.CORSConfig{
		AllowedOrigins: g.CORS.AllowedOrigins,
		MaxAge:         time.Duration(settings.Value(g.CORS.MaxAge)),
	}))
	if settings.Value(g.Logger) {
		middlewares = append(middlewares, gin.Logger(l))
	}
	if settings.Value(g.Recovery) {
		middlewares = append(middlewares, gin.Recovery(l))
	}
	return gin.New(middlewares...)
}
