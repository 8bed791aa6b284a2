// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the lendweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so each use case keeps validating its own settings.
//
// A few settings may be overridden by environment variables which are
// named after their yaml paths, e.g., LENDWEB_DATABASE_PASS_DIR for
// the database.pass-dir setting.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/momeni/lendweb/pkg/adapter/db/postgres/migration"
	"github.com/momeni/lendweb/pkg/core/repo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables which override
// the config file settings.
const EnvPrefix = "LENDWEB"

// Config contains all settings which are required by different parts
// of the lendweb, such as adapters or use cases.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // HTTP server and gin-gonic engine settings
	Log      Log      // Default logger settings
	Usecases Usecases // Configuration settings for supported use cases
}

// Load reads the yaml formatted path file, applies the environment
// overrides, and validates the resulting settings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes data like Load, without reading a file.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.overrideFromEnv(); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return c, nil
}

// envBindings returns the overridable settings keyed by their yaml
// paths. Values must be either *string or *int.
func (c *Config) envBindings() map[string]any {
	return map[string]any{
		"database.host":           &c.Database.Host,
		"database.port":           &c.Database.Port,
		"database.name":           &c.Database.Name,
		"database.pass-dir":       &c.Database.PassDir,
		"database.role-suffix":    (*string)(&c.Database.RoleSuffix),
		"database.auth-method":    &c.Database.AuthMethod,
		"gin.address":             &c.Gin.Address,
		"log.level":               &c.Log.Level,
		"log.format":              &c.Log.Format,
		"usecases.media.dir":      &c.Usecases.Media.Dir,
		"usecases.media.base-url": &c.Usecases.Media.BaseURL,
	}
}

func (c *Config) overrideFromEnv() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for key, dst := range c.envBindings() {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("binding %q: %w", key, err)
		}
		if !v.IsSet(key) {
			continue
		}
		s := v.GetString(key)
		switch dst := dst.(type) {
		case *string:
			*dst = s
		case *int:
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("parsing %q as integer: %w", key, err)
			}
			*dst = n
		default:
			panic(fmt.Sprintf("unexpected binding type: %T", dst))
		}
	}
	return nil
}

// ValidateAndNormalize validates the settings and fills the omitted
// items with their defaults.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Log.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating log settings: %w", err)
	}
	if err := c.Usecases.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating usecases settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool for the r role.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database as %s: %w",
			c.Database.Name, r, err)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// SchemaInitializer creates a repo.SchemaInitializer which creates the
// lending tables in the tx transaction and fills them with the
// development or production suitable rows.
func (c *Config) SchemaInitializer(tx repo.Tx) (
	repo.SchemaInitializer, error,
) {
	si, err := migration.NewInitializer(tx)
	if err != nil {
		return nil, err
	}
	return si, nil
}

// RenewPasswords generates new passwords for roles and passes them to
// change. See Database.RenewPasswords for the passwords files.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}
