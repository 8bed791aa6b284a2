// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/lendweb/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

const credsRenewalMessage = `
The admin role password is read from the .pgpass file in the pass-dir
directory (as given in the config file). The normal role is created if
it does not exist, and passwords of both roles are renewed. New
passwords are written to the .pgpass.new file first and it replaces the
.pgpass file after the database transaction commits.

The lendweb schema is dropped and created again, so it must be either
non-existent or empty.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used respectively.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data,
i.e., the lending tables and a few sample books, users, and loans.
` + credsRenewalMessage,
	RunE: initDB(func(ctx context.Context, uc *migrationuc.InitDBUseCase) error {
		return uc.InitDev(ctx)
	}),
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
i.e., the empty lending tables.
` + credsRenewalMessage,
	RunE: initDB(func(ctx context.Context, uc *migrationuc.InitDBUseCase) error {
		return uc.InitProd(ctx)
	}),
	Args: cobra.NoArgs,
}

func initDB(
	run func(ctx context.Context, uc *migrationuc.InitDBUseCase) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		c.Log.Install()
		if err = run(cmd.Context(), migrationuc.NewInitDB(c)); err != nil {
			return fmt.Errorf("initializing DB: %w", err)
		}
		return nil
	}
}

func init() {
	dbCmd.AddCommand(initDevCmd, initProdCmd)
	rootCmd.AddCommand(dbCmd)
}
