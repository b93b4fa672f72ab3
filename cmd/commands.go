package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wanderergaurav/Varuna-marine/config"
	"github.com/wanderergaurav/Varuna-marine/database"
	"github.com/wanderergaurav/Varuna-marine/models"
)

// ServeCmd runs the HTTP server until interrupted
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the compliance ledger HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), config.Get())
		},
	}
}

// MigrateCmd manages the postgres schema
func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.MigrateUp(config.Get().GetDatabaseURL())
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = parsed
			}
			return database.MigrateDown(config.Get().GetDatabaseURL(), steps)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.MigrateStatus(config.Get().GetDatabaseURL())
		},
	})

	return migrateCmd
}

type balanceOperation func(ctx context.Context, app *App, shipID string, year int) (*models.ComplianceBalance, error)

// BankCmd banks the surplus of one ship and year
func BankCmd() *cobra.Command {
	return balanceCommand("bank <shipId> <year>", "Move a ship's surplus into the bank",
		func(ctx context.Context, app *App, shipID string, year int) (*models.ComplianceBalance, error) {
			return app.Services.Banking.BankSurplus(ctx, shipID, year)
		})
}

// ApplyCmd applies all banked surplus of one ship and year
func ApplyCmd() *cobra.Command {
	return balanceCommand("apply <shipId> <year>", "Return a ship's banked surplus to its balance",
		func(ctx context.Context, app *App, shipID string, year int) (*models.ComplianceBalance, error) {
			return app.Services.Banking.ApplyBankedSurplus(ctx, shipID, year)
		})
}

func balanceCommand(use, short string, op balanceOperation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil || year <= 0 {
				return fmt.Errorf("year must be a positive integer, got %q", args[1])
			}

			ctx := cmd.Context()
			app, err := Bootstrap(ctx, config.Get())
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			cb, err := op(ctx, app, args[0], year)
			if err != nil {
				return err
			}
			return printBalance(cmd.OutOrStdout(), args[0], year, cb)
		},
	}
}

func printBalance(w io.Writer, shipID string, year int, cb *models.ComplianceBalance) error {
	if cb == nil {
		return fmt.Errorf("no compliance data for ship %s in %d", shipID, year)
	}
	_, err := fmt.Fprintf(w, "%s %d cb=%s gCO2eq\n", shipID, year, cb.Balance.String())
	return err
}
