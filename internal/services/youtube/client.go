package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

var (
	searchParts  = []string{"id", "snippet"}
	videoParts   = []string{"snippet", "statistics", "contentDetails", "topicDetails"}
	captionParts = []string{"id", "snippet"}
)

// Client implements VideoAPI on top of the YouTube Data API v3 client
type Client struct {
	service *youtubeapi.Service
}

// NewAPIKeyClient creates a client that sends apiKey as the key parameter of every request.
// Extra options (endpoint, HTTP client) are applied after the key.
func NewAPIKeyClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
}

// NewClient creates a client from raw client options
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := youtubeapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// SearchPage fetches one page of video search results
func (c *Client) SearchPage(ctx context.Context, query string, pageSize int64, pageToken string) (*SearchPage, error) {
	call := c.service.Search.List(searchParts).
		Q(query).
		Type("video").
		MaxResults(pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search for videos: %w", err)
	}

	page := &SearchPage{
		VideoIDs:      make([]string, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		id := ""
		if item != nil && item.Id != nil {
			id = item.Id.VideoId
		}
		page.VideoIDs = append(page.VideoIDs, id)
	}

	return page, nil
}

// ListVideos fetches full metadata for a batch of ids in one request
func (c *Client) ListVideos(ctx context.Context, ids []string) ([]VideoDetail, error) {
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d ids exceeds the limit of %d", len(ids), MaxBatchSize)
	}

	resp, err := c.service.Videos.List(videoParts).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	details := make([]VideoDetail, 0, len(resp.Items))
	for _, video := range resp.Items {
		if video == nil {
			continue
		}
		details = append(details, toVideoDetail(video))
	}
	return details, nil
}

// toVideoDetail flattens a videos.list item. Missing parts leave zero values.
func toVideoDetail(video *youtubeapi.Video) VideoDetail {
	detail := VideoDetail{
		ID:              video.Id,
		Tags:            []string{},
		TopicCategories: []string{},
	}

	if s := video.Snippet; s != nil {
		detail.Title = s.Title
		detail.Description = s.Description
		detail.ChannelTitle = s.ChannelTitle
		detail.CategoryID = s.CategoryId
		detail.PublishedAt = s.PublishedAt
		if s.Tags != nil {
			detail.Tags = s.Tags
		}
	}
	if st := video.Statistics; st != nil {
		detail.ViewCount = st.ViewCount
		detail.CommentCount = st.CommentCount
	}
	if cd := video.ContentDetails; cd != nil {
		detail.Duration = cd.Duration
	}
	if td := video.TopicDetails; td != nil && td.TopicCategories != nil {
		detail.TopicCategories = td.TopicCategories
	}

	return detail
}

// ListCaptionTracks lists the caption tracks of a video
func (c *Client) ListCaptionTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	resp, err := c.service.Captions.List(captionParts, videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list captions: %w", err)
	}

	tracks := make([]CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil {
			continue
		}
		track := CaptionTrack{ID: item.Id}
		if item.Snippet != nil {
			track.Language = item.Snippet.Language
			track.Name = item.Snippet.Name
			track.TrackKind = item.Snippet.TrackKind
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// DownloadCaption returns the raw content of a caption track
func (c *Client) DownloadCaption(ctx context.Context, trackID string) (string, error) {
	resp, err := c.service.Captions.Download(trackID).
		Context(ctx).
		Download()
	if err != nil {
		return "", fmt.Errorf("failed to download caption: %w", err)
	}
	defer utils.CloseQuietly(resp.Body, "caption response body")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption body: %w", err)
	}
	return string(body), nil
}

// StatusCode returns the HTTP status carried by an upstream error, or 0 for transport errors
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
