// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/lendweb/pkg/core/model"
)

type listQuery struct {
	IncludeInactive bool `form:"include_inactive"`
}

type bookReq struct {
	Title             string `json:"title" binding:"required"`
	Author            string `json:"author" binding:"max=255"`
	ISBN              string `json:"isbn" binding:"max=32"`
	Genre             string `json:"genre" binding:"max=100"`
	Pages             int    `json:"pages"`
	TotalQuantity     int    `json:"total_quantity"`
	AvailableQuantity *int   `json:"available_quantity"`
	Summary           string `json:"summary"`
	ImageURL          string `json:"image_url" binding:"omitempty,max=2048"`
}

type isbnReq struct {
	ISBN string `json:"isbn"`
}

type stockReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

// dserBookFields binds the JSON body of c as a book. An omitted
// available quantity is taken equal to the total quantity, so a new
// book is fully available.
func dserBookFields(c *gin.Context) (model.BookFields, bool) {
	var req bookReq
	if !serdser.Bind(c, &req, binding.JSON) {
		return model.BookFields{}, false
	}
	bf := model.BookFields{
		Title:             req.Title,
		Author:            req.Author,
		ISBN:              req.ISBN,
		Genre:             req.Genre,
		Pages:             req.Pages,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.TotalQuantity,
		Summary:           req.Summary,
		ImageURL:          req.ImageURL,
	}
	if req.AvailableQuantity != nil {
		bf.AvailableQuantity = *req.AvailableQuantity
	}
	return bf, true
}
