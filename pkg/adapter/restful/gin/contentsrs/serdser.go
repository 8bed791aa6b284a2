// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package contentsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/lendweb/pkg/core/model"
)

type rawFilter struct {
	AuthorID string `form:"author_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=rascunho publicado"`
}

type contentReq struct {
	Title     string   `json:"title" binding:"max=255"`
	Body      string   `json:"body"`
	Format    string   `json:"format" binding:"omitempty,oneof=html markdown"`
	BodyJSON  string   `json:"body_json"`
	Category  string   `json:"category" binding:"max=100"`
	Status    string   `json:"status"`
	AuthorID  string   `json:"author_id" binding:"omitempty,uuid"`
	MediaURLs []string `json:"media_urls" binding:"omitempty,dive,max=2048"`
}

func dserFilter(c *gin.Context) (f model.ContentFilter, ok bool) {
	var raw rawFilter
	if !serdser.Bind(c, &raw, binding.Query) {
		return f, false
	}
	if raw.AuthorID != "" {
		aid := uuid.MustParse(raw.AuthorID)
		f.AuthorID = &aid
	}
	if raw.Status != "" {
		s, err := model.ParseContentStatus(raw.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return f, false
		}
		f.Status = &s
	}
	return f, true
}

// dserContentFields binds the JSON body of c. The author is optional
// at this level, so its absence is reported by the use case along the
// other required fields.
func dserContentFields(c *gin.Context) (model.ContentFields, bool) {
	var req contentReq
	if !serdser.Bind(c, &req, binding.JSON) {
		return model.ContentFields{}, false
	}
	cf := model.ContentFields{
		Title:     req.Title,
		Body:      req.Body,
		Format:    model.ContentFormat(req.Format),
		BodyJSON:  req.BodyJSON,
		Category:  req.Category,
		Status:    req.Status,
		MediaURLs: req.MediaURLs,
	}
	if req.AuthorID != "" {
		cf.AuthorID = uuid.MustParse(req.AuthorID)
	}
	return cf, true
}
