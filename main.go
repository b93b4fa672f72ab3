package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wanderergaurav/Varuna-marine/cmd"
	"github.com/wanderergaurav/Varuna-marine/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "varuna",
		Short: "Varuna - FuelEU compliance ledger and pool allocator",
		Long: `Varuna computes per-ship compliance balances from route data, banks surplus
for later years and redistributes balance between ships through pools.`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			cfg := config.Get()
			return cmd.ConfigureLogging(cfg.LogLevel, cfg.LogFormat)
		},
	}

	rootCmd.AddCommand(cmd.ServeCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.BankCmd())
	rootCmd.AddCommand(cmd.ApplyCmd())

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
