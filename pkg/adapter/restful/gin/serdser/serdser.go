// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the resource packages. Requests are
// bound and validated with the gin bindings (and the validator tags),
// and errors are reported as JSON objects. A validation failure
// produces a {field: [messages]} object, while other failures produce
// a {"detail": message} object.
package serdser

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/log"
	"github.com/momeni/lendweb/pkg/core/model"
)

// Errors maps field names to their error messages.
type Errors map[string][]string

// Bind binds c request into req using b binding and validates it.
// If it fails, the error response is written and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	var verrs validator.ValidationErrors
	var ierr *validator.InvalidValidationError
	err := c.ShouldBindWith(req, b)
	switch {
	case err == nil:
		return true
	case errors.As(err, &ierr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case errors.As(err, &verrs):
		var errs Errors
		for _, ferr := range verrs {
			AddErr(&errs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, errs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends msgs to the name field errors, allocating errs map
// if it is nil.
func AddErr(errs *Errors, name string, msgs ...string) {
	if *errs == nil {
		*errs = make(Errors)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

// Assert adds msgs for the name field if ok is false. It returns ok.
func Assert(errs *Errors, ok bool, name string, msgs ...string) bool {
	if !ok {
		AddErr(errs, name, msgs...)
	}
	return ok
}

// PathID parses the name path param of c as a UUID. If it fails, the
// error response is written and false is returned.
func PathID(c *gin.Context, name string) (uuid.UUID, bool) {
	var errs Errors
	id, err := uuid.Parse(c.Param(name))
	if !Assert(&errs, err == nil, name, "Path param "+name+" is not a UUID.") {
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return id, true
}

// Page reads the page and size query params. Missing and out of range
// values are normalized, while malformed values are reported with 400
// and false is returned.
func Page(c *gin.Context) (model.Page, bool) {
	var q struct {
		Page int `form:"page"`
		Size int `form:"size"`
	}
	if !Bind(c, &q, binding.Query) {
		return model.Page{}, false
	}
	return model.Page{Number: q.Page, Size: q.Size}.Normalize(), true
}

// SerErr writes err as a {"detail": message} response. The status code
// of a cerr.Error is used as is and other errors are reported with 500
// after being logged, since they indicate a server side failure.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	log.Error(
		c.Request.Context(), "request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		log.Err("err", err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": "internal server error",
	})
}
