// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package contentsrs realizes the contents resource which manages
// the library news and articles.
package contentsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/lendweb/pkg/core/usecase/contentuc"
)

type resource struct {
	contents *contentuc.UseCase
}

// Register instantiates a resource adapting the contents use case
// with these REST APIs (relative to r):
//  1. GET contents?page&size&author_id&status lists the contents,
//  2. POST contents creates a content,
//  3. GET, PUT, and DELETE contents/:id fetch, replace, and remove
//     one content, and
//  4. POST contents/:id/publish publishes a content.
func Register(r *gin.RouterGroup, contents *contentuc.UseCase) {
	rs := &resource{contents: contents}
	r.GET("contents", rs.List)
	r.POST("contents", rs.Create)
	r.GET("contents/:id", rs.Get)
	r.PUT("contents/:id", rs.Update)
	r.DELETE("contents/:id", rs.Delete)
	r.POST("contents/:id/publish", rs.Publish)
}

func (rs *resource) List(c *gin.Context) {
	f, ok := dserFilter(c)
	if !ok {
		return
	}
	p, ok := serdser.Page(c)
	if !ok {
		return
	}
	res, err := rs.contents.List(c, f, p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rs *resource) Create(c *gin.Context) {
	cf, ok := dserContentFields(c)
	if !ok {
		return
	}
	cnt, err := rs.contents.Create(c, cf)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, cnt)
}

func (rs *resource) Get(c *gin.Context) {
	cid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	cnt, err := rs.contents.Get(c, cid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cnt)
}

func (rs *resource) Update(c *gin.Context) {
	cid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	cf, ok := dserContentFields(c)
	if !ok {
		return
	}
	cnt, err := rs.contents.Update(c, cid, cf)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cnt)
}

func (rs *resource) Publish(c *gin.Context) {
	cid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	cnt, err := rs.contents.Publish(c, cid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cnt)
}

func (rs *resource) Delete(c *gin.Context) {
	cid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	if err := rs.contents.Delete(c, cid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
