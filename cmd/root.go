package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rental-backend",
	Short: "Vacation rental marketplace API",
	Long:  "REST backend for property listings and bookings: search, availability, booking lifecycle.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using environment variables")
		}
	},
	// Bare invocation runs the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
