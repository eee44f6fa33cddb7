package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marketpulse/seo-audit/internal/audit"
	"github.com/marketpulse/seo-audit/internal/config"
	"github.com/marketpulse/seo-audit/internal/fetch"
	"github.com/marketpulse/seo-audit/internal/observability"
)

var auditURL string

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a one-shot audit against a URL",
	Long:  "Runs the full audit pipeline against a single URL and prints the report as JSON. Useful for smoke checks without the server.",
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().StringVarP(&auditURL, "url", "u", "", "Target URL to audit (required)")

	if err := auditCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := observability.NewLogger(cfg.LogLevel)

	pool, err := fetch.NewPool(1, log)
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer pool.Close()

	renderer := fetch.NewRenderer(pool, cfg.NavigationTimeout)
	aux := fetch.NewAuxClient(cfg.AuxTimeout)
	runner := audit.NewRunner(renderer, aux, log)

	report, err := runner.Run(context.Background(), auditURL)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
