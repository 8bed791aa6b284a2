// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansrs realizes the loans resource, allowing books to be
// lent and returned through the loans use case.
package loansrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/lendweb/pkg/core/usecase/loansuc"
)

type resource struct {
	loans *loansuc.UseCase
}

// Register instantiates a resource adapting the loans use case with
// these REST APIs (relative to r):
//  1. GET loans?page&size&status&user_id lists the loans,
//  2. POST loans lends a book to a user,
//  3. GET loans/overdue?as_of lists the overdue loans,
//  4. GET loans/:id fetches one loan, and
//  5. PATCH loans/:id/return returns the borrowed book.
func Register(r *gin.RouterGroup, loans *loansuc.UseCase) {
	rs := &resource{loans: loans}
	r.GET("loans", rs.List)
	r.POST("loans", rs.Create)
	r.GET("loans/overdue", rs.Overdue)
	r.GET("loans/:id", rs.Get)
	r.PATCH("loans/:id/return", rs.Return)
}

func (rs *resource) List(c *gin.Context) {
	req := dserListReq(c)
	if req == nil {
		return
	}
	p, ok := serdser.Page(c)
	if !ok {
		return
	}
	res, err := rs.loans.List(c, p, req.Status, req.UserID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rs *resource) Create(c *gin.Context) {
	req := dserCreateReq(c)
	if req == nil {
		return
	}
	l, err := rs.loans.Create(c, req.UserID, req.BookID, req.DueDate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (rs *resource) Overdue(c *gin.Context) {
	var raw rawOverdueReq
	if !serdser.Bind(c, &raw, binding.Query) {
		return
	}
	asOf, ok := parseDate(c, "as_of", raw.AsOf)
	if !ok {
		return
	}
	ll, err := rs.loans.Overdue(c, asOf)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ll)
}

func (rs *resource) Get(c *gin.Context) {
	lid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	l, err := rs.loans.Get(c, lid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (rs *resource) Return(c *gin.Context) {
	lid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	l, err := rs.loans.Return(c, lid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}
