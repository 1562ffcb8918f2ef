package cmd

import (
	"fmt"

	"github.com/gnzdotmx/ytdatascraper/internal/utils"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  `Load the configuration file, environment and flags and check that a scrape could start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LogInfo("Validating configuration...")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}

		if cfg.UsesOAuth() {
			utils.LogSuccess("Credentials: OAuth client secrets at %s", cfg.OAuthCredentials)
		} else {
			utils.LogSuccess("Credentials: API key (captions will only be reported as unavailable)")
		}
		if cfg.Query == "" {
			utils.LogInfo("Query: not set, scrape will prompt for it")
		} else {
			utils.LogSuccess("Query: %q", cfg.Query)
		}
		utils.LogSuccess("Output: %s (%d columns, up to %d videos)", cfg.OutputPath, len(cfg.Columns), cfg.TargetCount)

		utils.LogSuccess("Configuration validation completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
