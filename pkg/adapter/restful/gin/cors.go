// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Values of the CORS response headers.
const (
	CORSAllowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	CORSAllowedHeaders = "Content-Type, Authorization, Accept, " +
		"X-Requested-With, Origin"
	DefaultCORSMaxAge = 30 * time.Minute
)

// CORSConfig lists the origins which may call the APIs from a browser.
// An empty AllowedOrigins list (or one containing "*") accepts every
// origin.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         time.Duration
}

func (cc CORSConfig) allowed(origin string) bool {
	if len(cc.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(cc.AllowedOrigins, "*") ||
		slices.Contains(cc.AllowedOrigins, origin)
}

// CORS returns a middleware which adds the CORS headers to responses
// of the requests from the allowed origins. Preflight OPTIONS requests
// are answered immediately with 200, even if they do not carry the
// Access-Control-Request-Headers header. When they do, the requested
// headers are echoed back as the allowed headers.
func CORS(cc CORSConfig) HandlerFunc {
	if cc.MaxAge <= 0 {
		cc.MaxAge = DefaultCORSMaxAge
	}
	maxAge := strconv.Itoa(int(cc.MaxAge / time.Second))
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		ok := origin != "" && cc.allowed(origin)
		if ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", CORSAllowedMethods)
			h.Set("Access-Control-Allow-Headers", CORSAllowedHeaders)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Max-Age", maxAge)
			h.Add("Vary", "Origin")
		}
		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		if rh := c.GetHeader("Access-Control-Request-Headers"); ok && rh != "" {
			c.Header("Access-Control-Allow-Headers", rh)
		}
		c.AbortWithStatus(http.StatusOK)
	}
}
