package scraper

import (
	"context"
	"fmt"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
)

// DetailOutcome holds the detail items of one batch in response order
type DetailOutcome struct {
	Details []youtubesvc.VideoDetail
	Diagnostics
}

// Batches splits ids into consecutive chunks of at most size, preserving order
func Batches(ids []string, size int) [][]string {
	if size < 1 {
		size = youtubesvc.MaxBatchSize
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

// FetchDetails issues one bulk request for a batch of at most MaxBatchSize ids.
// On failure the batch yields no details.
func (s *Scraper) FetchDetails(ctx context.Context, ids []string) DetailOutcome {
	var out DetailOutcome
	if len(ids) == 0 {
		return out
	}

	out.Requests++
	details, err := s.api.ListVideos(ctx, ids)
	if err != nil {
		utils.LogWarning("Error fetching video details: %v", err)
		out.fail(StageDetails, batchTarget(ids), err)
		return out
	}

	out.Details = details
	return out
}

func batchTarget(ids []string) string {
	if len(ids) == 1 {
		return ids[0]
	}
	return fmt.Sprintf("%s..%s (%d ids)", ids[0], ids[len(ids)-1], len(ids))
}
