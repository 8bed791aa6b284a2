// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package mediauc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/momeni/lendweb/pkg/adapter/storage/local"
	"github.com/momeni/lendweb/pkg/core/cerr"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/momeni/lendweb/pkg/core/usecase/mediauc"
	"github.com/stretchr/testify/require"
)

var pngHeader = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01"

func newUseCase(t *testing.T, opts ...mediauc.Option) (
	*mediauc.UseCase, string,
) {
	root := t.TempDir()
	s, err := local.New(root, "/media/")
	require.NoError(t, err)
	now := time.Date(2024, time.May, 17, 10, 0, 0, 0, time.UTC)
	opts = append(opts, mediauc.WithClock(func() time.Time { return now }))
	uc, err := mediauc.New(s, opts...)
	require.NoError(t, err)
	return uc, root
}

func upload(name, contentType, data string) model.MediaUpload {
	return model.MediaUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Body:        strings.NewReader(data),
	}
}

func TestUploadAndDelete(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	uc, root := newUseCase(t)

	m, err := uc.Upload(ctx, upload(`C:\photos\Cover.PNG`, "image/png", pngHeader))
	r.NoError(err)
	r.True(strings.HasPrefix(m.Key, "2024/05/17/"), "key: %s", m.Key)
	r.True(strings.HasSuffix(m.Key, ".png"), "key: %s", m.Key)
	r.Equal("/media/"+m.Key, m.URL)
	r.Equal("image/png", m.ContentType)
	r.Equal(int64(len(pngHeader)), m.Size)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(m.Key)))
	r.NoError(err)
	r.Equal(pngHeader, string(data))

	r.NoError(uc.Delete(ctx, "/"+m.Key))
	err = uc.Delete(ctx, m.Key)
	r.True(cerr.Is(err, cerr.KindNotFound), "deleted twice: %v", err)
	err = uc.Delete(ctx, "../../etc/passwd")
	r.True(cerr.Is(err, cerr.KindNotFound), "outside the root: %v", err)
	err = uc.Delete(ctx, "")
	r.True(cerr.Is(err, cerr.KindValidation), "empty key: %v", err)
}

func TestUploadDetectsExtension(t *testing.T) {
	r := require.New(t)
	uc, _ := newUseCase(t)
	m, err := uc.Upload(context.Background(), upload("notes", "", "hello"))
	r.NoError(err)
	r.True(strings.HasSuffix(m.Key, ".txt"), "key: %s", m.Key)
	r.True(strings.HasPrefix(m.ContentType, "text/plain"))
}

func TestUploadRejections(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><script/></svg>`
	uc, _ := newUseCase(t, mediauc.WithMaxFileSize(64))
	for name, mu := range map[string]model.MediaUpload{
		"no filename":     upload("", "image/png", pngHeader),
		"empty":           upload("a.png", "image/png", ""),
		"declared size":   upload("a.png", "image/png", strings.Repeat("a", 65)),
		"declared svg":    upload("a.png", "image/svg+xml", pngHeader),
		"detected svg":    upload("a.png", "image/png", svg),
		"understated size": {
			Filename: "a.txt", Size: 1,
			Body: strings.NewReader(strings.Repeat("a", 100)),
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Upload(context.Background(), mu)
			require.True(
				t, cerr.Is(err, cerr.KindValidation), "err: %v", err,
			)
		})
	}
}

func TestUploadRejectsSVGExtension(t *testing.T) {
	hidden := "<!-- " + strings.Repeat("x", 4000) + " -->" +
		`<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"/>`
	uc, _ := newUseCase(t)
	for _, mu := range []model.MediaUpload{
		upload("evil.svg", "text/plain", hidden),
		upload("A.SVG", "", pngHeader),
	} {
		_, err := uc.Upload(context.Background(), mu)
		require.True(
			t, cerr.Is(err, cerr.KindValidation), "%s: %v", mu.Filename, err,
		)
	}
	m, err := uc.Upload(context.Background(), upload(
		"evil.txt", "text/plain", hidden,
	))
	require.NoError(t, err)
	require.False(t, strings.HasSuffix(m.Key, ".svg"), "key: %s", m.Key)
}

func TestUploadIgnoresClientExtension(t *testing.T) {
	r := require.New(t)
	uc, _ := newUseCase(t)
	m, err := uc.Upload(context.Background(), upload(
		"cover.html", "image/png", pngHeader,
	))
	r.NoError(err)
	r.True(strings.HasSuffix(m.Key, ".png"), "key: %s", m.Key)
}

func TestOptions(t *testing.T) {
	_, err := mediauc.New(nil, mediauc.WithMaxFileSize(0))
	require.Error(t, err)
	_, err = mediauc.New(nil, mediauc.WithClock(nil))
	require.Error(t, err)
}
