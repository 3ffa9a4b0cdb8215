package main

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesweep/internal/config"
	"github.com/hamed0406/sitesweep/internal/domain"
	"github.com/hamed0406/sitesweep/internal/httpapi"
	"github.com/hamed0406/sitesweep/internal/logging"
	"github.com/hamed0406/sitesweep/internal/repo"
	"github.com/hamed0406/sitesweep/internal/repo/memory"
	"github.com/hamed0406/sitesweep/internal/repo/postgres"
	"github.com/hamed0406/sitesweep/internal/sweep"
)

var serveFlags struct {
	configFile string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sweeps API",
	Long: `Serve an HTTP API that runs one-shot sweeps on demand and keeps
their results.

  POST /api/sweeps      {"urls": [...]}  run a sweep now
  GET  /api/sweeps                       list stored runs
  GET  /api/sweeps/{id}                  full outcome set of one run

Stores runs in memory unless DATABASE_URL points at Postgres. Set
ADMIN_API_KEYS to protect the trigger endpoint.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.configFile, "config", "c", "", "YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if serveFlags.configFile != "" {
		if err := cfg.ApplyFile(serveFlags.configFile); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var store repo.SweepStore = memory.New()
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
		logger.Info("store_postgres")
	} else {
		logger.Info("store_memory")
	}

	settings := sweep.Settings{
		Workers: cfg.Workers,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
		Backoff: cfg.Backoff,
	}
	sweepFn := func(ctx context.Context, targets []string) (*domain.Run, error) {
		return sweep.Batch(ctx, logger, targets, settings, nil)
	}

	api := httpapi.NewServer(logger, store, sweepFn, cfg.AdminAPIKeys, cfg.SweepRPM, cfg.SweepBurst)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
	return nil
}
