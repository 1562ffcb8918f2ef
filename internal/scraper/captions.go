package scraper

import (
	"context"

	"github.com/gnzdotmx/ytdatascraper/internal/utils"
)

// FetchCaptionText lists the caption tracks of a video and downloads the first one.
// found is false when listing fails, no track exists, or the download fails; only the two
// upstream failures are recorded in the diagnostics.
func (s *Scraper) FetchCaptionText(ctx context.Context, videoID string) (text string, found bool, diag Diagnostics) {
	diag.Requests++
	tracks, err := s.api.ListCaptionTracks(ctx, videoID)
	if err != nil {
		utils.LogWarning("Error fetching captions for %s: %v", videoID, err)
		diag.fail(StageCaptionList, videoID, err)
		return "", false, diag
	}
	if len(tracks) == 0 {
		utils.LogDebug("No caption tracks for %s", videoID)
		return "", false, diag
	}

	diag.Requests++
	text, err = s.api.DownloadCaption(ctx, tracks[0].ID)
	if err != nil {
		utils.LogWarning("Error downloading caption %s for %s: %v", tracks[0].ID, videoID, err)
		diag.fail(StageCaptionContent, videoID, err)
		return "", false, diag
	}

	return text, true, diag
}
