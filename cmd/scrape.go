package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnzdotmx/ytdatascraper/internal/config"
	"github.com/gnzdotmx/ytdatascraper/internal/pipeline"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"
)

const queryPrompt = "Enter the search query: "

var (
	queryFlag            string
	countFlag            int
	outputFlag           string
	apiKeyFlag           string
	oauthCredentialsFlag string
	captionWorkersFlag   int
	showFailuresFlag     int

	// clientOptions are passed to every YouTube client the scrape builds
	clientOptions []option.ClientOption
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Search videos and export their metadata",
	Long: `Search YouTube for a query, fetch details and captions for every result and
write one row per video. Failed upstream calls shrink the output but never fail the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		if cfg.Query == "" {
			cfg.Query, err = utils.PromptLine(cmd.InOrStdin(), cmd.OutOrStdout(), queryPrompt)
			if err != nil {
				return err
			}
		}
		if err := cfg.ValidateQuery(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api, err := pipeline.Connect(ctx, cfg, clientOptions...)
		if err != nil {
			return fmt.Errorf("failed to initialize YouTube client: %w", err)
		}

		report, err := pipeline.Run(ctx, cfg, api)
		if report != nil {
			report.Render(cmd.OutOrStdout())
			if showFailuresFlag > 0 {
				report.RenderFailures(cmd.OutOrStdout(), showFailuresFlag)
			}
		}
		if err != nil {
			return err
		}

		utils.LogSuccess("Table generated successfully at %s", report.OutputPath)
		return nil
	},
}

// loadConfig layers flags over the YAML file over environment over defaults
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(configFilePath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("query") {
		cfg.Query = queryFlag
	}
	if flags.Changed("count") {
		cfg.TargetCount = countFlag
	}
	if flags.Changed("output") {
		cfg.OutputPath = outputFlag
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKeyFlag
	}
	if flags.Changed("oauth-credentials") {
		cfg.OAuthCredentials = oauthCredentialsFlag
	}
	if flags.Changed("caption-workers") {
		cfg.CaptionWorkers = captionWorkersFlag
	}

	return cfg, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	scrapeCmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Search query (prompted for when empty)")
	scrapeCmd.Flags().IntVarP(&countFlag, "count", "n", config.DefaultTargetCount, "Maximum number of videos to collect")
	scrapeCmd.Flags().StringVarP(&outputFlag, "output", "o", config.DefaultOutputPath, "Output file (.csv or .xlsx), overwritten if it exists")
	scrapeCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "YouTube Data API key (defaults to $"+config.EnvAPIKey+")")
	scrapeCmd.Flags().StringVar(&oauthCredentialsFlag, "oauth-credentials", "", "OAuth client secrets JSON; required for caption downloads")
	scrapeCmd.Flags().IntVarP(&captionWorkersFlag, "caption-workers", "w", config.DefaultCaptionWorkers, "Concurrent caption lookups per batch")
	scrapeCmd.Flags().IntVar(&showFailuresFlag, "show-failures", 0, "List up to N failed upstream calls after the summary")
	rootCmd.AddCommand(scrapeCmd)
}
