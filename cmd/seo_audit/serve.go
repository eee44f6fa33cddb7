package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketpulse/seo-audit/internal/audit"
	"github.com/marketpulse/seo-audit/internal/config"
	"github.com/marketpulse/seo-audit/internal/fetch"
	"github.com/marketpulse/seo-audit/internal/observability"
	"github.com/marketpulse/seo-audit/internal/server"
	"github.com/marketpulse/seo-audit/internal/server/ratelimit"
	"github.com/marketpulse/seo-audit/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the audit HTTP server",
	Long:  "Start an HTTP server exposing POST /api/seo-audit, plus health, metrics, and audit history endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log := observability.NewLogger(cfg.LogLevel)
	metrics := observability.NewMetrics()

	pool, err := fetch.NewPool(cfg.BrowserPoolSize, log)
	if err != nil {
		return fmt.Errorf("failed to start browser pool: %w", err)
	}

	renderer := fetch.NewRenderer(pool, cfg.NavigationTimeout)
	aux := fetch.NewAuxClient(cfg.AuxTimeout)
	runner := audit.NewRunner(renderer, aux, log)

	limiter := ratelimit.NewMemoryLimiter(5 * time.Minute)

	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			pool.Close()
			return fmt.Errorf("failed to connect audit history store: %w", err)
		}
		log.Info("audit history store connected")
	}

	srv := server.New(cfg, runner, limiter, st, log, metrics)
	srv.OnShutdown(limiter.Stop)
	srv.OnShutdown(pool.Close)

	return srv.Start()
}
