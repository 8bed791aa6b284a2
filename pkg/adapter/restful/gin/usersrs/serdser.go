// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrs

import "github.com/momeni/lendweb/pkg/core/model"

type listQuery struct {
	Search string `form:"search"`
}

type userReq struct {
	Name   string `json:"name" binding:"required,max=255"`
	Email  string `json:"email" binding:"required,max=255"`
	Phone  string `json:"phone" binding:"max=20"`
	Active *bool  `json:"active"`
}

func (req *userReq) toModel() model.UserFields {
	return model.UserFields{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: req.Active,
	}
}
