// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"bufio"
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/lendweb/pkg/adapter/hash/scram"
	"github.com/momeni/lendweb/pkg/core/log"
	"github.com/momeni/lendweb/pkg/core/repo"
	scrami "github.com/momeni/lendweb/pkg/core/scram"
)

// Names of the passwords files in the Database.PassDir directory.
const (
	PassFile    = ".pgpass"
	NewPassFile = ".pgpass.new"
)

// Database contains the PostgreSQL connection settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like lendweb
	PassDir string `yaml:"pass-dir"` // directory of the .pgpass file

	// RoleSuffix is appended to the repo.AdminRole and repo.NormalRole
	// role names. Parallel tests use distinct suffixes, so they can
	// share a database cluster.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod is either scram-sha-1 or scram-sha-256 (default).
	// It selects how the role passwords are hashed before being sent
	// to the DBMS.
	AuthMethod string `yaml:"auth-method,omitempty"`

	hasher scrami.Hasher
}

// ConnectionPool connects to the database as the r role (suffixed by
// d.RoleSuffix). The password is looked up in the .pgpass file of the
// d.PassDir directory. If it is rejected, a previous passwords renewal
// may have been interrupted after changing the passwords, so the
// .pgpass.new file is tried too and, if it works, it replaces the
// .pgpass file.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	path := filepath.Join(d.PassDir, PassFile)
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err == nil {
		return p, nil
	}
	newPath := filepath.Join(d.PassDir, NewPassFile)
	log.Warn(
		ctx, "cannot connect to database, trying the new pass-file",
		slog.String("path", path),
		slog.String("newPath", newPath),
		log.Err("err", err),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL builds a postgresql URL for the r role (suffixed by
// d.RoleSuffix) taking its password from the path file. That file may
// have empty and #-commented lines besides the lines in this format:
//
//	host:port:dbname:role:password
func (d Database) ConnectionURL(r repo.Role, path string) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r += d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	sc := bufio.NewScanner(bytes.NewReader(passLines))
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		if p, ok := strings.CutPrefix(line, prfx); ok {
			pass = p
			break
		}
	}
	if pass == "" {
		return "", errors.New("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// NewSchemaRepo instantiates a Schema repository which suffixes the
// role names by d.RoleSuffix and hashes their passwords as expected
// by d.AuthMethod. ValidateAndNormalize must be called beforehand.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates a random password for each one of roles,
// writes them into the .pgpass.new file, and calls change to update
// them in the database. The returned finalizer moves the .pgpass.new
// file over the .pgpass file and must be called after the change
// transaction is committed.
func (d Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	b := make([]byte, 16)
	enc := base64.RawStdEncoding
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	var lines strings.Builder
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		passwords[i] = enc.EncodeToString(b)
		fmt.Fprintf(&lines, "%s:%s:%s\n", prfx, r+d.RoleSuffix, passwords[i])
	}
	orgPath := filepath.Join(d.PassDir, PassFile)
	newPath := filepath.Join(d.PassDir, NewPassFile)
	err = os.WriteFile(newPath, []byte(lines.String()), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return func() error {
		return os.Rename(newPath, orgPath)
	}, nil
}

// ValidateAndNormalize fills the default auth method and instantiates
// its hasher. It rejects unknown auth methods.
func (d *Database) ValidateAndNormalize() error {
	if d.AuthMethod == "" {
		d.AuthMethod = "scram-sha-256"
	}
	h, err := scram.ForAuthMethod(d.AuthMethod)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	d.hasher = h
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", d.Port)
	}
	return nil
}
