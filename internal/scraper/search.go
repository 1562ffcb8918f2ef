package scraper

import (
	"context"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
)

// SearchResult is a search stub: only the id survives to the next stage
type SearchResult struct {
	VideoID string
}

// SearchOutcome holds the collected stubs in search order
type SearchOutcome struct {
	Stubs []SearchResult
	Pages int
	Diagnostics
}

// IDs returns the stub ids in order, duplicates included
func (o SearchOutcome) IDs() []string {
	ids := make([]string, len(o.Stubs))
	for i, stub := range o.Stubs {
		ids[i] = stub.VideoID
	}
	return ids
}

// Search pages through the search endpoint until targetCount stubs are collected or the
// continuation token runs out. An upstream failure ends pagination with the stubs so far.
func (s *Scraper) Search(ctx context.Context, query string, targetCount int) SearchOutcome {
	var out SearchOutcome
	pageToken := ""

	for len(out.Stubs) < targetCount {
		if err := ctx.Err(); err != nil {
			utils.LogDebug("Search stopped: %v", err)
			break
		}
		pageSize := min(youtubesvc.MaxPageSize, targetCount-len(out.Stubs))

		out.Requests++
		page, err := s.api.SearchPage(ctx, query, int64(pageSize), pageToken)
		if err != nil {
			utils.LogWarning("Error fetching videos: %v", err)
			out.fail(StageSearch, pageTarget(pageToken), err)
			break
		}
		out.Pages++

		for _, id := range page.VideoIDs {
			if id == "" {
				utils.LogDebug("Skipping search result without a video id")
				continue
			}
			out.Stubs = append(out.Stubs, SearchResult{VideoID: id})
		}
		utils.LogVerbose("Search page %d: %d results (%d collected)", out.Pages, len(page.VideoIDs), len(out.Stubs))

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
		// an empty page with a token would otherwise loop forever
		if len(page.VideoIDs) == 0 {
			utils.LogDebug("Search returned an empty page with a continuation token, stopping")
			break
		}
	}

	return out
}

func pageTarget(token string) string {
	if token == "" {
		return "first page"
	}
	return "page " + token
}
