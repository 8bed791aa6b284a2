// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/lendweb/pkg/adapter/db/postgres/usersrp"
	"github.com/spf13/cobra"
)

var asOf string

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "Loans reports",
}

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Print the overdue loans as JSON",
	Long: `Print the active loans which their due date is before the
--as-of day (today by default) as a JSON array.`,
	RunE: printOverdue,
	Args: cobra.NoArgs,
}

func printOverdue(cmd *cobra.Command, _ []string) error {
	var day time.Time
	if asOf != "" {
		var err error
		if day, err = time.Parse(time.DateOnly, asOf); err != nil {
			return fmt.Errorf("parsing --as-of: %w", err)
		}
	}
	ctx := cmd.Context()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	c.Log.Install()
	p, err := openPool(ctx, c)
	if err != nil {
		return err
	}
	defer p.Close()
	loans, err := c.Usecases.Loans.NewUseCase(
		p, loansrp.New(), usersrp.New(), booksrp.New(), 0,
	)
	if err != nil {
		return fmt.Errorf("creating loans use case: %w", err)
	}
	ll, err := loans.Overdue(ctx, day)
	if err != nil {
		return fmt.Errorf("listing overdue loans: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ll)
}

func init() {
	overdueCmd.Flags().StringVar(
		&asOf, "as-of", "", "reference day in the YYYY-MM-DD format",
	)
	loansCmd.AddCommand(overdueCmd)
	rootCmd.AddCommand(loansCmd)
}
