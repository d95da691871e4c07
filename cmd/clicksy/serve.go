package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clicksy/clicksy-api/internal/cache"
	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/logging"
	"github.com/clicksy/clicksy-api/internal/pricing"
	"github.com/clicksy/clicksy-api/internal/scheduler"
	"github.com/clicksy/clicksy-api/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing profiles, peer recommendations and the marketplace price hint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := cfg.RequireServe(); err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	deps := server.Deps{Store: database}
	if cfg.Redis.URL != "" {
		rc, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.RecommendTTL)
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		deps.Cache = rc
		deps.Events = rc
	} else {
		logging.Info().Msg("REDIS_URL not set, recommendation cache and listing events disabled")
	}

	estimator := pricing.NewEstimator(nil)
	deps.Estimator = estimator

	sched := scheduler.New(estimator, newGenerator(cfg.Market.Seed), cfg.Market.RefreshSpec)
	sched.Refresh()
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start corpus scheduler: %w", err)
	}
	defer sched.Stop()

	srv, err := server.New(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}

// newGenerator builds the corpus generator from the market config. A zero seed is time-seeded.
func newGenerator(seed int64) *pricing.Generator {
	opts := []pricing.Option{pricing.WithReferenceYear(referenceYear())}
	if seed != 0 {
		opts = append(opts, pricing.WithSeed(seed))
	}
	return pricing.NewGenerator(opts...)
}

func referenceYear() int {
	if cfg != nil {
		return cfg.Market.ReferenceYear
	}
	return pricing.LastYear
}
