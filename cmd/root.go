package cmd

import (
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
	// configFilePath is the optional YAML configuration shared by all commands
	configFilePath string
)

var rootCmd = &cobra.Command{
	Use:   "ytdatascraper",
	Short: "Collect YouTube video metadata for a search query into a table",
	Long: `ytdatascraper searches the YouTube Data API for a query, enriches every result
with statistics, topics and caption availability, and writes the rows to a CSV or XLSX file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.SetLogLevel(utils.LogLevelFromString(verbosityLevel))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
	rootCmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "", "Path to YAML configuration file")
}
