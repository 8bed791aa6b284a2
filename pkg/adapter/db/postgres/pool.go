// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/lendweb/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool represents a database connection pool. It embeds *gorm.DB and
// may be used concurrently.
type Pool struct {
	*gorm.DB
}

// NewPool connects to the PostgreSQL database which is identified by
// the url connection string and returns its pool.
// The connection is tested before returning.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	return Open(ctx, postgres.Open(url))
}

// Open creates a Pool for the d dialector. It is used by NewPool and
// by other GORM supported databases (e.g., SQLite) which should be
// accessed through the repo ports.
func Open(ctx context.Context, d gorm.Dialector) (*Pool, error) {
	gdb, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				ParameterizedQueries:      true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// ConnHandler is the repo.ConnHandler which is called by Pool.Conn.
type ConnHandler = repo.ConnHandler

// NoOpConnHandler ignores its connection. It is useful for checking
// that a connection may be acquired.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a connection, wraps it as a Conn, and passes it to f.
// The connection is released when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		return f(ctx, &Conn{session{c}})
	})
}

// Close closes the underlying sql.DB instance.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
