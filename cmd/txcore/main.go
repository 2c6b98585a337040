package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/synnergy-chain/txcore/core"
)

func main() {
	// Best-effort .env load for local development, mirroring the teacher's
	// cmd/explorer/main.go convention; a deployed node supplies real
	// environment variables and this is expected to find nothing.
	_ = godotenv.Load(".env")

	rootCmd := &cobra.Command{Use: "txcore", Short: "Transaction core utilities"}
	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(idCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(configCmd())
	if err := rootCmd.Execute(); err != nil {
		core.Log.WithError(err).Error("txcore command failed")
		os.Exit(1)
	}
}
