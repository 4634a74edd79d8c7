package cmd

import (
	"github.com/spf13/cobra"

	"rental-backend/config"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run migrations and seed sample properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		// ConnectDatabase migrates and seeds when the table is empty.
		return config.ConnectDatabase()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
