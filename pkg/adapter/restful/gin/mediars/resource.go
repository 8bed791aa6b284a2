// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mediars realizes the media resource. It accepts multipart
// uploads, deletes the stored files, and serves them statically.
package mediars

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/usecase/mediauc"
)

// FormField is the multipart field name which carries the file.
const FormField = "file"

type resource struct {
	media *mediauc.UseCase
}

// Register instantiates a resource adapting the media use case with
// POST media and DELETE media/*key APIs (relative to r).
func Register(r *gin.RouterGroup, media *mediauc.UseCase) {
	rs := &resource{media: media}
	r.POST("media", rs.Upload)
	r.DELETE("media/*key", rs.Delete)
}

// Serve makes the files in the dir directory downloadable under the
// relativePath of e, e.g., /media.
func Serve(e *gin.Engine, relativePath, dir string) {
	e.Static(relativePath, dir)
}

func (rs *resource) Upload(c *gin.Context) {
	fh, err := c.FormFile(FormField)
	if err != nil {
		var errs serdser.Errors
		serdser.AddErr(&errs, FormField, "A multipart file is required.")
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	f, err := fh.Open()
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	defer f.Close()
	m, err := rs.media.Upload(c, model.MediaUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (rs *resource) Delete(c *gin.Context) {
	if err := rs.media.Delete(c, c.Param("key")); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
