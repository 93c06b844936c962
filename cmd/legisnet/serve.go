package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/policyposse/legisnet/internal/config"
	"github.com/policyposse/legisnet/internal/server"
	"github.com/policyposse/legisnet/internal/storage"
	"github.com/policyposse/legisnet/internal/subgraph"
)

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the network data API and visualization",
	Long: `Run the HTTP server over the snapshot store.

Endpoints:
  GET /api/network-data  full dataset document (404 when no snapshot)
  GET /api/subgraph      filtered subgraph; min=, policy=, strategy= params
  GET /                  rendered visualization page
  GET /healthz           liveness probe`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	strategy, err := subgraph.ParseStrategy(cfg.SamplingStrategy)
	if err != nil {
		exitWithError(ExitConfigError, "invalid config: %v", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer db.Close()

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:             port,
		CacheTTL:         cfg.CacheTTL,
		SamplingStrategy: strategy,
		DefaultThreshold: subgraph.ClampThreshold(cfg.MinCollaborations),
		AllowedOrigins:   cfg.AllowedOrigins,
		RateLimit:        cfg.RateLimit,
		RateBurst:        cfg.RateBurst,
	}, db)

	// Shut down cleanly on interrupt.
	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		return err
	case <-sig:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
