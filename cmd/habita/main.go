package main

import (
	"os"

	"github.com/spf13/cobra"

	"habita/internal/interfaces/cli/configcmd"
	"habita/internal/interfaces/cli/migrate"
	"habita/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "habita",
		Short: "Habita - real estate classifieds platform",
		Long:  `Habita is a real estate classifieds service with plan-based listing quotas, hosted checkout billing and webhook-driven entitlement reconciliation.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		configcmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
