// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "io"

// Media describes a stored media file. Key is the storage relative
// path like 2024/05/17/<uuid>.png and URL is its public address.
type Media struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// MediaUpload is an uploaded file which is not stored yet. The Body
// must provide exactly Size bytes.
type MediaUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
