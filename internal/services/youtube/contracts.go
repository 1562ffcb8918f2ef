package youtube

import (
	"context"
)

// VideoAPI defines the upstream calls the scraping stages depend on
type VideoAPI interface {
	// SearchPage fetches one page of video search results
	SearchPage(ctx context.Context, query string, pageSize int64, pageToken string) (*SearchPage, error)

	// ListVideos fetches full metadata for up to MaxBatchSize ids in one request
	ListVideos(ctx context.Context, ids []string) ([]VideoDetail, error)

	// ListCaptionTracks lists the caption tracks of a video
	ListCaptionTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)

	// DownloadCaption returns the raw content of a caption track
	DownloadCaption(ctx context.Context, trackID string) (string, error)
}

// MaxPageSize is the largest maxResults the search endpoint accepts
const MaxPageSize = 50

// MaxBatchSize is the largest number of ids one videos.list call accepts
const MaxBatchSize = 50

// SearchPage is one page of search stubs
type SearchPage struct {
	VideoIDs      []string // Video ids in response order; empty ids are preserved as ""
	NextPageToken string   // Continuation token, empty on the last page
}

// VideoDetail is the flattened videos.list item
type VideoDetail struct {
	ID              string
	Title           string
	Description     string
	ChannelTitle    string
	Tags            []string
	CategoryID      string
	TopicCategories []string
	PublishedAt     string
	Duration        string // ISO 8601, e.g. PT4M13S
	ViewCount       uint64
	CommentCount    uint64
}

// CaptionTrack describes one caption track of a video
type CaptionTrack struct {
	ID        string
	Language  string
	Name      string
	TrackKind string
}
