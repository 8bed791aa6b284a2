// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package local implements the repo.MediaStorage port on the local
// file system. Files are served by the gin engine from the same
// directory, under the configured base URL.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/momeni/lendweb/pkg/core/repo"
)

// Storage keeps the media files under its root directory.
type Storage struct {
	root    string
	baseURL string
}

// New creates the root directory (if it is missing) and returns a
// Storage which reports the files URLs relative to baseURL.
func New(root, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating %q: %w", root, err)
	}
	return &Storage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root returns the root directory of s.
func (s *Storage) Root() string {
	return s.root
}

// filename converts key into a path below the root directory, or
// fails if key is empty or escapes the root directory.
func (s *Storage) filename(key string) (string, error) {
	if key == "" || path.IsAbs(key) || !fs.ValidPath(key) {
		return "", fmt.Errorf("invalid media key: %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func (s *Storage) Store(ctx context.Context, key string, r io.Reader) error {
	fn, err := s.filename(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return fmt.Errorf("creating parent dir: %w", err)
	}
	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if _, err = io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(fn)
		return fmt.Errorf("writing file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(fn)
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

func (s *Storage) URL(key string) string {
	return s.baseURL + "/" + key
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	fn, err := s.filename(key)
	if err != nil {
		return repo.ErrNotFound
	}
	err = os.Remove(fn)
	if errors.Is(err, fs.ErrNotExist) {
		return repo.ErrNotFound
	}
	return err
}
