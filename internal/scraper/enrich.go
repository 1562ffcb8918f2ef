package scraper

import (
	"context"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"golang.org/x/sync/errgroup"
)

// BatchOutcome holds the records built from one detail batch
type BatchOutcome struct {
	Records       []VideoRecord
	DetailsFailed bool
	CaptionsFound int
	Diagnostics
}

// EnrichOutcome aggregates every batch of a run
type EnrichOutcome struct {
	Records       []VideoRecord
	Batches       int
	FailedBatches int
	CaptionsFound int
	Diagnostics
}

// EnrichBatch fetches details for one batch and looks up captions for every returned video.
// Records keep the order of the detail response whatever the worker count.
func (s *Scraper) EnrichBatch(ctx context.Context, ids []string) BatchOutcome {
	details := s.FetchDetails(ctx, ids)
	out := BatchOutcome{
		DetailsFailed: len(details.Failures) > 0,
		Diagnostics:   details.Diagnostics,
	}
	if len(details.Details) == 0 {
		return out
	}

	records := make([]VideoRecord, len(details.Details))
	captionDiags := make([]Diagnostics, len(details.Details))

	var g errgroup.Group
	g.SetLimit(s.captionWorkers)
	for i, detail := range details.Details {
		i, detail := i, detail
		g.Go(func() error {
			if ctx.Err() != nil {
				records[i] = NewVideoRecord(detail, "", false)
				return nil
			}
			text, found, diag := s.FetchCaptionText(ctx, detail.ID)
			records[i] = NewVideoRecord(detail, text, found)
			captionDiags[i] = diag
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	for i, diag := range captionDiags {
		out.Merge(diag)
		if records[i].CaptionsAvailable {
			out.CaptionsFound++
		}
	}
	out.Records = records
	return out
}

// Enrich chunks ids into batches of MaxBatchSize and enriches them one after another
func (s *Scraper) Enrich(ctx context.Context, ids []string) EnrichOutcome {
	var out EnrichOutcome
	batches := Batches(ids, youtubesvc.MaxBatchSize)

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			utils.LogWarning("Enrichment stopped before batch %d of %d: %v", i+1, len(batches), err)
			break
		}
		utils.LogInfo("Enriching batch %d of %d (%d videos)", i+1, len(batches), len(batch))

		b := s.EnrichBatch(ctx, batch)
		out.Batches++
		if b.DetailsFailed {
			out.FailedBatches++
		}
		out.Records = append(out.Records, b.Records...)
		out.CaptionsFound += b.CaptionsFound
		out.Merge(b.Diagnostics)

		utils.LogVerbose("Batch %d: %d records, %d with captions", i+1, len(b.Records), b.CaptionsFound)
	}

	return out
}
