// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksrs realizes the books resource, allowing the catalog
// REST APIs to be accepted and delegated to the books use case.
package booksrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/lendweb/pkg/core/usecase/booksuc"
)

type resource struct {
	books *booksuc.UseCase
}

// Register instantiates a resource adapting the books use case with
// these REST APIs (relative to r):
//  1. GET books?page&size&include_inactive lists the books,
//  2. POST books creates a book,
//  3. GET books/:id fetches one book,
//  4. PUT books/:id replaces the book fields,
//  5. PATCH books/:id/isbn replaces (or clears) the ISBN,
//  6. POST books/:id/stock adds copies to the inventory, and
//  7. DELETE books/:id deactivates the book.
func Register(r *gin.RouterGroup, books *booksuc.UseCase) {
	rs := &resource{books: books}
	r.GET("books", rs.List)
	r.POST("books", rs.Create)
	r.GET("books/:id", rs.Get)
	r.PUT("books/:id", rs.Update)
	r.PATCH("books/:id/isbn", rs.UpdateISBN)
	r.POST("books/:id/stock", rs.AddStock)
	r.DELETE("books/:id", rs.Delete)
}

func (rs *resource) List(c *gin.Context) {
	var q listQuery
	if !serdser.Bind(c, &q, binding.Query) {
		return
	}
	p, ok := serdser.Page(c)
	if !ok {
		return
	}
	res, err := rs.books.List(c, p, q.IncludeInactive)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rs *resource) Create(c *gin.Context) {
	bf, ok := dserBookFields(c)
	if !ok {
		return
	}
	b, err := rs.books.Create(c, bf)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (rs *resource) Get(c *gin.Context) {
	bid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	b, err := rs.books.Get(c, bid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (rs *resource) Update(c *gin.Context) {
	bid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	bf, ok := dserBookFields(c)
	if !ok {
		return
	}
	b, err := rs.books.Update(c, bid, bf)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (rs *resource) UpdateISBN(c *gin.Context) {
	bid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	var req isbnReq
	if !serdser.Bind(c, &req, binding.JSON) {
		return
	}
	b, err := rs.books.UpdateISBN(c, bid, req.ISBN)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (rs *resource) AddStock(c *gin.Context) {
	bid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	var req stockReq
	if !serdser.Bind(c, &req, binding.JSON) {
		return
	}
	b, err := rs.books.AddStock(c, bid, req.Quantity)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (rs *resource) Delete(c *gin.Context) {
	bid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	if err := rs.books.Delete(c, bid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
