package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamed0406/sitesweep/internal/config"
	"github.com/hamed0406/sitesweep/internal/input"
)

var validateFlags struct {
	configFile string
	urlFile    string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration and URL list without sweeping",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if validateFlags.configFile != "" {
			if err := cfg.ApplyFile(validateFlags.configFile); err != nil {
				return err
			}
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}
		fmt.Printf("✔ config ok (workers=%d timeout=%s retries=%d)\n",
			cfg.Workers, cfg.Timeout, cfg.Retries)

		if validateFlags.urlFile != "" {
			urls, err := input.LoadFile(validateFlags.urlFile)
			if err != nil {
				return err
			}
			if len(urls) == 0 {
				return fmt.Errorf("url list %s has no usable entries", validateFlags.urlFile)
			}
			fmt.Printf("✔ %s: %d URLs\n", validateFlags.urlFile, len(urls))
		}

		if cfg.DatabaseURL == "" {
			fmt.Println("⚠ DATABASE_URL empty — serve mode will use the in-memory store")
		}
		if len(cfg.AdminAPIKeys) == 0 {
			fmt.Println("⚠ ADMIN_API_KEYS empty — sweep trigger endpoint will be open")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFlags.configFile, "config", "c", "", "YAML config file")
	validateCmd.Flags().StringVar(&validateFlags.urlFile, "file", "", "URL list to check")
	rootCmd.AddCommand(validateCmd)
}
