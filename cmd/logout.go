package cmd

import (
	"fmt"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"github.com/spf13/cobra"
)

var logoutDryRun bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the cached OAuth token",
	Long:  `Delete the OAuth token saved by a previous scrape so the next one asks for consent again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		storage, err := utils.NewTokenStorage(cfg.TokenDir)
		if err != nil {
			return err
		}
		path := storage.TokenPath(youtubesvc.TokenName)

		if logoutDryRun {
			utils.LogInfo("Would remove %s", path)
			return nil
		}

		removed, err := storage.DeleteToken(youtubesvc.TokenName)
		if err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		if !removed {
			utils.LogInfo("No cached token at %s", path)
			return nil
		}
		utils.LogSuccess("Removed %s", path)
		return nil
	},
}

func init() {
	logoutCmd.Flags().BoolVar(&logoutDryRun, "dry-run", false, "Show the token file without removing it")
	rootCmd.AddCommand(logoutCmd)
}
