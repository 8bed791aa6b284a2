// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the library
// members to be managed through the users use case.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/lendweb/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register instantiates a resource adapting the users use case with
// these REST APIs (relative to r):
//  1. GET users?page&size&search lists the users,
//  2. POST users creates a user,
//  3. GET users/:id fetches one user,
//  4. PUT users/:id replaces the user fields,
//  5. PATCH users/:id/active flips the active flag,
//  6. GET users/:id/eligibility reports if the user may borrow, and
//  7. DELETE users/:id deactivates the user.
func Register(r *gin.RouterGroup, users *usersuc.UseCase) {
	rs := &resource{users: users}
	r.GET("users", rs.List)
	r.POST("users", rs.Create)
	r.GET("users/:id", rs.Get)
	r.PUT("users/:id", rs.Update)
	r.PATCH("users/:id/active", rs.ToggleActive)
	r.GET("users/:id/eligibility", rs.Eligibility)
	r.DELETE("users/:id", rs.Delete)
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
	res, err := rs.users.List(c, p, q.Search)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rs *resource) Create(c *gin.Context) {
	var req userReq
	if !serdser.Bind(c, &req, binding.JSON) {
		return
	}
	u, err := rs.users.Create(c, req.toModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (rs *resource) Get(c *gin.Context) {
	uid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	u, err := rs.users.Get(c, uid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (rs *resource) Update(c *gin.Context) {
	uid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	var req userReq
	if !serdser.Bind(c, &req, binding.JSON) {
		return
	}
	u, err := rs.users.Update(c, uid, req.toModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (rs *resource) ToggleActive(c *gin.Context) {
	uid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	u, err := rs.users.ToggleActive(c, uid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (rs *resource) Eligibility(c *gin.Context) {
	uid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	eligible, err := rs.users.Eligibility(c, uid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"eligible":   eligible,
		"fine_limit": rs.users.FineLimit(),
	})
}

func (rs *resource) Delete(c *gin.Context) {
	uid, ok := serdser.PathID(c, "id")
	if !ok {
		return
	}
	if err := rs.users.Delete(c, uid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
