package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesweep/internal/config"
	"github.com/hamed0406/sitesweep/internal/input"
	"github.com/hamed0406/sitesweep/internal/logging"
	"github.com/hamed0406/sitesweep/internal/notify"
	"github.com/hamed0406/sitesweep/internal/report"
	"github.com/hamed0406/sitesweep/internal/repo/postgres"
	"github.com/hamed0406/sitesweep/internal/sweep"
)

var sweepFlags struct {
	configFile string
	urlFile    string
	workers    int
	timeout    time.Duration
	retries    int
	backoff    time.Duration
	output     string
	verbose    bool
}

var sweepCmd = &cobra.Command{
	Use:   "sweep [URL ...]",
	Short: "Probe a URL list once and write a report",
	Long: `Probe every URL once, in parallel, and write the outcome set to a
JSON report. URLs come from --file, positional arguments, or both
(file entries first). The run ends only after every URL has been
attempted; per-URL failures never abort the sweep.`,
	RunE: runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepFlags.configFile, "config", "c", "", "YAML config file")
	f.StringVar(&sweepFlags.urlFile, "file", "", "file with one URL per line ('#' comments allowed)")
	f.IntVar(&sweepFlags.workers, "workers", 4, "concurrent workers")
	f.DurationVar(&sweepFlags.timeout, "timeout", 5*time.Second, "per-attempt HTTP timeout")
	f.IntVar(&sweepFlags.retries, "retries", 0, "additional attempts after the first")
	f.DurationVar(&sweepFlags.backoff, "backoff", 100*time.Millisecond, "wait between failed attempts")
	f.StringVarP(&sweepFlags.output, "output", "o", "", "JSON report path (empty disables)")
	f.BoolVarP(&sweepFlags.verbose, "verbose", "v", false, "per-probe debug logging")
	rootCmd.AddCommand(sweepCmd)
}

// loadSweepConfig resolves settings with flag > file > env > default
// precedence.
func loadSweepConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	if sweepFlags.configFile != "" {
		if err := cfg.ApplyFile(sweepFlags.configFile); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = sweepFlags.workers
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = sweepFlags.timeout
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries = sweepFlags.retries
	}
	if cmd.Flags().Changed("backoff") {
		cfg.Backoff = sweepFlags.backoff
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = sweepFlags.output
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadSweepConfig(cmd)
	if err != nil {
		return err
	}

	urls, err := input.Collect(sweepFlags.urlFile, args)
	if err != nil {
		return err
	}

	logger := logging.NewConsole(sweepFlags.verbose)
	defer logger.Sync()

	printer := &report.Printer{W: os.Stdout}
	settings := sweep.Settings{
		Workers: cfg.Workers,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
		Backoff: cfg.Backoff,
	}

	run, err := sweep.Batch(cmd.Context(), logger, urls, settings, printer.Print)
	if run == nil {
		return err
	}
	if err != nil {
		// Interrupted: report what was collected before bailing out.
		report.Summary(os.Stdout, run.Outcomes)
		return err
	}

	report.Summary(os.Stdout, run.Outcomes)

	if cfg.Output != "" {
		if err := report.WriteJSON(cfg.Output, run.Outcomes); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", cfg.Output)
	}

	if cfg.DatabaseURL != "" {
		store, err := postgres.New(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			logger.Warn("store_connect_failed", zap.Error(err))
		} else {
			defer store.Close()
			if err := store.SaveRun(cmd.Context(), run); err != nil {
				logger.Warn("store_save_failed", zap.String("run_id", string(run.ID)), zap.Error(err))
			}
		}
	}

	var notifiers notify.Multi
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		notifiers = append(notifiers, slack)
	}
	if len(notifiers) > 0 {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := notifiers.NotifyRun(ctx, run); err != nil {
			logger.Warn("notify_failed", zap.Error(err))
		}
	}

	return nil
}
