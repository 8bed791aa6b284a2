// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command contains the cobra commands of the lendweb. The
// root command runs the web server, while the db and loans commands
// manage the database and report the overdue loans.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/lendweb/pkg/adapter/config"
	"github.com/momeni/lendweb/pkg/adapter/db/sqlite"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/routes"
	"github.com/momeni/lendweb/pkg/core/log"
	"github.com/momeni/lendweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

// memorySQLite is the --sqlite flag value when it is given without
// a path.
const memorySQLite = ":memory:"

var (
	cfgPath    string
	sqlitePath string
	sampleData bool
)

var rootCmd = &cobra.Command{
	Use:   "lendweb",
	Short: "A library lending web service",
	Long: `A library lending web service which manages the books catalog,
the library users, and the loans of books to users. It also keeps the
library news and articles and their uploaded media files.
The REST APIs are served under the /api/lendweb/v1 path.

By default, the PostgreSQL database which is described in the config
file is used and it must be initialized by the "db init-dev" or the
"db init-prod" commands beforehand. For a quick try, the --sqlite flag
runs the server on a fresh in-memory SQLite database with sample data
(or on the given SQLite file).`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	l := c.Log.Install()
	p, err := openPool(ctx, c)
	if err != nil {
		return err
	}
	defer p.Close()
	e := c.Gin.NewEngine(l)
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info(ctx, "lendweb is listening", slog.String("addr", srv.Addr))
	select {
	case err = <-errCh:
		return fmt.Errorf("running HTTP server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running HTTP server: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	return c, nil
}

// openPool connects to the SQLite database if the --sqlite flag is
// given, and to the configured PostgreSQL database otherwise.
func openPool(ctx context.Context, c *config.Config) (repo.Pool, error) {
	if sqlitePath == "" {
		p, err := c.ConnectionPool(ctx, repo.NormalRole)
		if err != nil {
			return nil, fmt.Errorf("creating DB pool: %w", err)
		}
		return p, nil
	}
	path, seed := sqlitePath, sampleData
	if path == memorySQLite {
		path, seed = "", true
	}
	p, err := sqlite.NewPool(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	if err = sqlite.InitSchema(ctx, p, seed); err != nil {
		p.Close()
		return nil, fmt.Errorf("initializing SQLite schema: %w", err)
	}
	log.Info(
		ctx, "using SQLite database",
		slog.String("path", sqlitePath), slog.Bool("sampleData", seed),
	)
	return p, nil
}

// Execute runs the root command, or the asked sub-command, and exits
// with a non-zero code if it fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "config file path")
	pf.StringVar(
		&sqlitePath, "sqlite", "",
		"use a SQLite database file instead of PostgreSQL "+
			"(in-memory if no path is given)",
	)
	pf.Lookup("sqlite").NoOptDefVal = memorySQLite
	pf.BoolVar(
		&sampleData, "sample-data", false,
		"insert the sample rows into a new SQLite database file",
	)
}

func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
