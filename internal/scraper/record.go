package scraper

import (
	"strconv"
	"strings"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
)

// WatchURLPrefix builds a VideoRecord's identity from a video id
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Column names of the exported table
const (
	ColVideoURL          = "Video URL"
	ColTitle             = "Title"
	ColDescription       = "Description"
	ColChannelTitle      = "Channel Title"
	ColKeywordTags       = "Keyword Tags"
	ColCategory          = "Category"
	ColTopicDetails      = "Topic Details"
	ColPublishedAt       = "Published at"
	ColVideoDuration     = "Video Duration"
	ColViewCount         = "View Count"
	ColCommentCount      = "Comment Count"
	ColCaptionsAvailable = "Captions Available"
	ColCaptionText       = "Caption Text"
)

// DefaultColumns is the fixed column order of the exported table
var DefaultColumns = []string{
	ColVideoURL, ColTitle, ColDescription, ColChannelTitle, ColKeywordTags,
	ColCategory, ColTopicDetails, ColPublishedAt, ColVideoDuration,
	ColViewCount, ColCommentCount, ColCaptionsAvailable, ColCaptionText,
}

// IsColumn reports whether name is one of DefaultColumns
func IsColumn(name string) bool {
	for _, c := range DefaultColumns {
		if c == name {
			return true
		}
	}
	return false
}

// VideoRecord is one exported row. It is built once per detail item and not modified afterwards.
type VideoRecord struct {
	VideoURL          string
	Title             string
	Description       string
	ChannelTitle      string
	KeywordTags       string
	Category          string
	TopicCategories   []string
	PublishedAt       string
	Duration          string
	ViewCount         uint64
	CommentCount      uint64
	CaptionsAvailable bool
	CaptionText       string
}

// NewVideoRecord combines a detail item with its caption lookup.
// An empty caption body counts as no captions.
func NewVideoRecord(d youtubesvc.VideoDetail, captionText string, captionFound bool) VideoRecord {
	available := captionFound && captionText != ""
	if !available {
		captionText = ""
	}

	topics := make([]string, len(d.TopicCategories))
	copy(topics, d.TopicCategories)

	return VideoRecord{
		VideoURL:          WatchURLPrefix + d.ID,
		Title:             d.Title,
		Description:       d.Description,
		ChannelTitle:      d.ChannelTitle,
		KeywordTags:       strings.Join(d.Tags, ", "),
		Category:          d.CategoryID,
		TopicCategories:   topics,
		PublishedAt:       d.PublishedAt,
		Duration:          d.Duration,
		ViewCount:         d.ViewCount,
		CommentCount:      d.CommentCount,
		CaptionsAvailable: available,
		CaptionText:       captionText,
	}
}

// Values flattens the record into column name -> cell text
func (r VideoRecord) Values() map[string]string {
	return map[string]string{
		ColVideoURL:          r.VideoURL,
		ColTitle:             r.Title,
		ColDescription:       r.Description,
		ColChannelTitle:      r.ChannelTitle,
		ColKeywordTags:       r.KeywordTags,
		ColCategory:          r.Category,
		ColTopicDetails:      strings.Join(r.TopicCategories, ", "),
		ColPublishedAt:       r.PublishedAt,
		ColVideoDuration:     r.Duration,
		ColViewCount:         strconv.FormatUint(r.ViewCount, 10),
		ColCommentCount:      strconv.FormatUint(r.CommentCount, 10),
		ColCaptionsAvailable: strconv.FormatBool(r.CaptionsAvailable),
		ColCaptionText:       r.CaptionText,
	}
}
