// Package pipeline runs a scrape end to end: search, batch enrichment, export.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/gnzdotmx/ytdatascraper/internal/config"
	"github.com/gnzdotmx/ytdatascraper/internal/export"
	"github.com/gnzdotmx/ytdatascraper/internal/scraper"
	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Connect builds the upstream client the configuration asks for
func Connect(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (youtubesvc.VideoAPI, error) {
	if cfg.UsesOAuth() {
		utils.LogVerbose("Authorizing with OAuth credentials %s", cfg.OAuthCredentials)
		return youtubesvc.NewOAuthClient(ctx, cfg.OAuthCredentials, cfg.TokenDir, opts...)
	}
	return youtubesvc.NewAPIKeyClient(ctx, cfg.APIKey, opts...)
}

// Run executes one scrape. Upstream failures only shrink the output; the returned error is
// non-nil only when the export cannot be written or ctx was cancelled before export, in which
// case no file is written.
func Run(ctx context.Context, cfg *config.Config, api youtubesvc.VideoAPI) (*Report, error) {
	report := &Report{
		RunID:       uuid.New().String(),
		Query:       cfg.Query,
		TargetCount: cfg.TargetCount,
		StartedAt:   time.Now(),
	}
	s := scraper.New(api, scraper.WithCaptionWorkers(cfg.CaptionWorkers))

	utils.LogInfo("Searching for %q (up to %d videos)", cfg.Query, cfg.TargetCount)
	search := s.Search(ctx, cfg.Query, cfg.TargetCount)
	report.Stubs = len(search.Stubs)
	report.SearchPages = search.Pages
	report.Diagnostics.Merge(search.Diagnostics)
	utils.LogInfo("Found %d videos in %d pages", len(search.Stubs), search.Pages)

	enriched := s.Enrich(ctx, search.IDs())
	report.Batches = enriched.Batches
	report.FailedBatches = enriched.FailedBatches
	report.Records = len(enriched.Records)
	report.CaptionsFound = enriched.CaptionsFound
	report.Diagnostics.Merge(enriched.Diagnostics)

	if err := ctx.Err(); err != nil {
		report.Duration = time.Since(report.StartedAt)
		return report, fmt.Errorf("run cancelled before export: %w", err)
	}

	res, err := export.Write(cfg.OutputPath, enriched.Records, cfg.Columns)
	report.Duration = time.Since(report.StartedAt)
	if err != nil {
		return report, fmt.Errorf("failed to export results: %w", err)
	}
	report.OutputPath = res.Path
	report.Truncated = res.Truncated

	if n := len(report.Failures); n > 0 {
		utils.LogWarning("Completed with %d failed upstream calls; output is partial", n)
	}
	return report, nil
}
