// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a disposable postgres:16 container for
// the tests which need a real PostgreSQL server, e.g., the database
// initialization tests. Container tests are slow and need a docker
// compatible engine, so they are skipped unless LENDWEB_PG_TESTS=1.
//
// With podman, start the podman.service and export
//
//	DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
package dbcontainer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres"
)

// EnvVar enables the container based tests when it is set to 1.
const EnvVar = "LENDWEB_PG_TESTS"

// SkipUnlessEnabled skips t unless the container tests are enabled.
func SkipUnlessEnabled(t *testing.T) {
	t.Helper()
	if os.Getenv(EnvVar) != "1" {
		t.Skipf("set %s=1 to run the PostgreSQL container tests", EnvVar)
	}
}

// DB is a running container and a superuser pool connected to it.
type DB struct {
	Pool *postgres.Pool
	URL  string
	Port int
}

// New starts a container and waits (at most for timeout) until it
// accepts connections. The pool and container are released by the
// t.Cleanup callbacks. Failures are reported with t.Fatal.
func New(ctx context.Context, timeout time.Duration, t *testing.T) *DB {
	t.Helper()
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(startCtx, "16")
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pg.Shutdown(ctx); err != nil {
			t.Errorf("shutting down postgres container: %v", err)
		}
	})
	db := &DB{URL: pg.ConnectionString()}
	if db.Port, err = port(db.URL); err != nil {
		t.Fatal(err)
	}
	if db.Pool, err = connect(startCtx, db.URL); err != nil {
		t.Fatalf("connecting to postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Pool.Close(); err != nil {
			t.Errorf("closing the connections pool: %v", err)
		}
	})
	return db
}

// connect retries while the server is starting up or unreachable,
// until ctx expires.
func connect(ctx context.Context, u string) (*postgres.Pool, error) {
	for {
		p, err := postgres.NewPool(ctx, u)
		var netErr net.Error
		switch {
		case err == nil:
			return p, nil
		case ctx.Err() != nil:
			return nil, err
		case postgres.IsStartingUp(err), errors.As(err, &netErr):
			time.Sleep(100 * time.Millisecond)
		default:
			return nil, err
		}
	}
}

func port(connStr string) (int, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return 0, fmt.Errorf("parsing container URL: %w", err)
	}
	p, err := strconv.Atoi(u.Port())
	if err != nil {
		return 0, fmt.Errorf("parsing container port: %w", err)
	}
	return p, nil
}
