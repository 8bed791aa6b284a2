// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mediauc contains the media UseCase which accepts the images
// and documents which are referenced by the book covers and contents.
package mediauc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/repo"
)

// DefaultMaxFileSize is the default upload limit, 1 MiB.
const DefaultMaxFileSize = 1 << 20

// forbiddenTypes may carry scripts, so they are rejected whether they
// are declared by the client or detected from the file contents.
var forbiddenTypes = []string{
	"image/svg+xml",
	"application/x-shockwave-flash",
}

// UseCase represents the media use case.
type UseCase struct {
	storage repo.MediaStorage

	maxFileSize int64
	now         func() time.Time
}

// New instantiates a media use case.
func New(s repo.MediaStorage, opts ...Option) (*UseCase, error) {
	uc := &UseCase{storage: s}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.maxFileSize == 0 {
		uc.maxFileSize = DefaultMaxFileSize
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

func forbidden(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	for _, f := range forbiddenTypes {
		if mt == f {
			return true
		}
	}
	return false
}

// Upload use case validates and stores the mu file under a
// YYYY/MM/DD/<uuid>.<ext> key, where ext matches the detected type,
// and returns its public information.
func (media *UseCase) Upload(
	ctx context.Context, mu model.MediaUpload,
) (*model.Media, error) {
	name := path.Base(strings.ReplaceAll(mu.Filename, `\`, "/"))
	if name == "" || name == "." || name == "/" {
		return nil, cerr.Validationf("filename is required")
	}
	if mu.Size > media.maxFileSize {
		return nil, cerr.Validationf(
			"file is larger than %d bytes", media.maxFileSize,
		)
	}
	if forbidden(mu.ContentType) {
		return nil, cerr.Validationf(
			"file type %s is not allowed", mu.ContentType,
		)
	}
	if ext := path.Ext(name); forbidden(mime.TypeByExtension(ext)) {
		return nil, cerr.Validationf("file extension %s is not allowed", ext)
	}
	data, err := io.ReadAll(io.LimitReader(mu.Body, media.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	switch n := int64(len(data)); {
	case n == 0:
		return nil, cerr.Validationf("file is empty")
	case n > media.maxFileSize:
		return nil, cerr.Validationf(
			"file is larger than %d bytes", media.maxFileSize,
		)
	}
	mt := mimetype.Detect(data)
	for p := mt; p != nil; p = p.Parent() {
		if forbidden(p.String()) {
			return nil, cerr.Validationf(
				"file type %s is not allowed", p.String(),
			)
		}
	}
	// The stored extension decides how the file is served later.
	key := path.Join(
		media.now().UTC().Format("2006/01/02"),
		uuid.NewString()+mt.Extension(),
	)
	if err := media.storage.Store(ctx, key, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("storing %q: %w", key, err)
	}
	return &model.Media{
		Key:         key,
		URL:         media.storage.URL(key),
		ContentType: mt.String(),
		Size:        int64(len(data)),
	}, nil
}

// Delete use case removes the key file.
func (media *UseCase) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return cerr.Validationf("media key is required")
	}
	err := media.storage.Delete(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFoundf("media not found with key: %s", key)
	}
	return err
}
