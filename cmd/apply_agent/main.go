// Package main provides the entry point for the startup applier CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apply_agent",
	Short: "Automated job applier for Work at a Startup",
	Long:  "apply_agent discovers job postings on Work at a Startup, extracts structured job and company details, generates a personalized message, and submits applications after human review.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
