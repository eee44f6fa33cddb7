// Package main provides the entry point for the SEO audit service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seo_audit",
	Short: "SEO audit service",
	Long:  "Audits arbitrary web pages with a headless browser: renders the page, runs a battery of SEO checks, and produces a scored report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
