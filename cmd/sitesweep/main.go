// Package main is the entry point for the sitesweep CLI.
//
// Usage:
//
//	sitesweep sweep --file urls.txt            # one-shot sweep, report to status.json
//	sitesweep sweep https://a.com https://b.com
//	sitesweep serve                            # results API, sweeps on demand
//	sitesweep validate -c sitesweep.yaml       # check config and URL list
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sitesweep",
	Short: "One-shot parallel health sweep of a URL list",
	Long: `sitesweep probes a list of URLs over HTTP in parallel, recording
reachability, response code and latency for each, and writes a
consolidated JSON report.

Any received HTTP status — 404 and 500 included — counts as reachable;
only transport-level failures (DNS, connection, timeout) are retried
and reported as errors.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitesweep %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
