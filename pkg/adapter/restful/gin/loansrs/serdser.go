// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
)

type rawListReq struct {
	Status string `form:"status"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

type listReq struct {
	Status string
	UserID *uuid.UUID
}

type rawCreateReq struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	BookID  string `json:"book_id" binding:"required,uuid"`
	DueDate string `json:"due_date"`
}

type createReq struct {
	UserID, BookID uuid.UUID
	DueDate        *time.Time
}

type rawOverdueReq struct {
	AsOf string `form:"as_of"`
}

// parseDate parses raw in the YYYY-MM-DD format. A blank raw gives the
// zero time. If raw is malformed, the error response is written and
// false is returned.
func parseDate(c *gin.Context, name, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		var errs serdser.Errors
		serdser.AddErr(&errs, name, "Expected a YYYY-MM-DD date.")
		c.JSON(http.StatusBadRequest, errs)
		return time.Time{}, false
	}
	return t, true
}

func dserListReq(c *gin.Context) *listReq {
	var raw rawListReq
	if !serdser.Bind(c, &raw, binding.Query) {
		return nil
	}
	req := &listReq{Status: raw.Status}
	if raw.UserID != "" {
		uid := uuid.MustParse(raw.UserID)
		req.UserID = &uid
	}
	return req
}

func dserCreateReq(c *gin.Context) *createReq {
	var raw rawCreateReq
	if !serdser.Bind(c, &raw, binding.JSON) {
		return nil
	}
	req := &createReq{
		UserID: uuid.MustParse(raw.UserID),
		BookID: uuid.MustParse(raw.BookID),
	}
	due, ok := parseDate(c, "due_date", raw.DueDate)
	if !ok {
		return nil
	}
	if !due.IsZero() {
		req.DueDate = &due
	}
	return req
}
