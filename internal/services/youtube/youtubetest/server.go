// Package youtubetest provides an in-process fake of the YouTube Data API endpoints used by the scraper.
package youtubetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	youtubeapi "google.golang.org/api/youtube/v3"
)

const apiPrefix = "/youtube/v3/"

// Server serves search, videos, captions and caption downloads from in-memory fixtures.
// Search page tokens are decimal offsets into SearchIDs.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	// SearchIDs is the full result list the search endpoint pages through
	SearchIDs []string
	// FailSearchPage makes the n-th search call (0-based) answer 500
	FailSearchPage map[int]bool
	// Videos overrides the generated detail for an id
	Videos map[string]*youtubeapi.Video
	// FailVideoCall makes the n-th videos call (0-based) answer 500
	FailVideoCall map[int]bool
	// Captions maps a video id to its caption track ids
	Captions map[string][]string
	// FailCaptionList makes captions.list for a video id answer 500
	FailCaptionList map[string]bool
	// CaptionBodies maps a track id to its content; other tracks answer 403
	CaptionBodies map[string]string

	// SearchQueries records q of every search call
	SearchQueries []string
	// SearchMaxResults records maxResults of every search call
	SearchMaxResults []int
	// SearchTokens records pageToken of every search call
	SearchTokens []string
	// VideoBatches records the ids of every videos call
	VideoBatches [][]string
	// CaptionListCalls counts captions.list calls
	CaptionListCalls int
	// CaptionDownloadCalls counts caption downloads
	CaptionDownloadCalls int
	// APIKeys records the key parameter of every request
	APIKeys []string
}

// NewServer starts a fake with empty fixtures. Callers fill the exported fields before use
// and must Close the server.
func NewServer() *Server {
	s := &Server{
		FailSearchPage:  map[int]bool{},
		Videos:          map[string]*youtubeapi.Video{},
		FailVideoCall:   map[int]bool{},
		Captions:        map[string][]string{},
		FailCaptionList: map[string]bool{},
		CaptionBodies:   map[string]string{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Endpoint is the base URL to pass to option.WithEndpoint
func (s *Server) Endpoint() string {
	return s.URL + "/"
}

// IDs generates n distinct video ids with the given prefix
func IDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return ids
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.APIKeys = append(s.APIKeys, r.URL.Query().Get("key"))

	path := strings.TrimPrefix(r.URL.Path, apiPrefix)
	switch {
	case path == "search":
		s.handleSearch(w, r)
	case path == "videos":
		s.handleVideos(w, r)
	case path == "captions":
		s.handleCaptionList(w, r)
	case strings.HasPrefix(path, "captions/"):
		s.handleCaptionDownload(w, strings.TrimPrefix(path, "captions/"))
	default:
		writeError(w, http.StatusNotFound, "unknown endpoint "+r.URL.Path)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	call := len(s.SearchMaxResults)
	maxResults, _ := strconv.Atoi(q.Get("maxResults"))
	s.SearchQueries = append(s.SearchQueries, q.Get("q"))
	s.SearchMaxResults = append(s.SearchMaxResults, maxResults)
	s.SearchTokens = append(s.SearchTokens, q.Get("pageToken"))

	if s.FailSearchPage[call] {
		writeError(w, http.StatusInternalServerError, "search backend unavailable")
		return
	}

	offset := 0
	if tok := q.Get("pageToken"); tok != "" {
		var err error
		if offset, err = strconv.Atoi(tok); err != nil {
			writeError(w, http.StatusBadRequest, "invalid page token")
			return
		}
	}

	end := offset + maxResults
	if end > len(s.SearchIDs) {
		end = len(s.SearchIDs)
	}
	if offset > end {
		offset = end
	}

	resp := &youtubeapi.SearchListResponse{Kind: "youtube#searchListResponse"}
	for _, id := range s.SearchIDs[offset:end] {
		resp.Items = append(resp.Items, &youtubeapi.SearchResult{
			Id:      &youtubeapi.ResourceId{Kind: "youtube#video", VideoId: id},
			Snippet: &youtubeapi.SearchResultSnippet{Title: "Video " + id},
		})
	}
	if end < len(s.SearchIDs) {
		resp.NextPageToken = strconv.Itoa(end)
	}
	writeJSON(w, resp)
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	call := len(s.VideoBatches)
	var ids []string
	for _, v := range r.URL.Query()["id"] {
		for _, id := range strings.Split(v, ",") {
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	s.VideoBatches = append(s.VideoBatches, ids)

	if s.FailVideoCall[call] {
		writeError(w, http.StatusInternalServerError, "videos backend unavailable")
		return
	}

	resp := &youtubeapi.VideoListResponse{Kind: "youtube#videoListResponse"}
	for _, id := range ids {
		if v, ok := s.Videos[id]; ok {
			resp.Items = append(resp.Items, v)
			continue
		}
		resp.Items = append(resp.Items, DefaultVideo(id))
	}
	writeJSON(w, resp)
}

// DefaultVideo is the detail served for ids without an override
func DefaultVideo(id string) *youtubeapi.Video {
	return &youtubeapi.Video{
		Id: id,
		Snippet: &youtubeapi.VideoSnippet{
			Title:        "Video " + id,
			Description:  "About " + id,
			ChannelTitle: "Channel",
			CategoryId:   "28",
			PublishedAt:  "2024-01-02T03:04:05Z",
			Tags:         []string{"robots", "engineering"},
		},
		Statistics:     &youtubeapi.VideoStatistics{ViewCount: 1000, CommentCount: 10},
		ContentDetails: &youtubeapi.VideoContentDetails{Duration: "PT5M"},
		TopicDetails: &youtubeapi.VideoTopicDetails{
			TopicCategories: []string{"https://en.wikipedia.org/wiki/Technology"},
		},
	}
}

func (s *Server) handleCaptionList(w http.ResponseWriter, r *http.Request) {
	s.CaptionListCalls++
	videoID := r.URL.Query().Get("videoId")
	if s.FailCaptionList[videoID] {
		writeError(w, http.StatusInternalServerError, "captions backend unavailable")
		return
	}

	resp := &youtubeapi.CaptionListResponse{Kind: "youtube#captionListResponse"}
	for _, trackID := range s.Captions[videoID] {
		resp.Items = append(resp.Items, &youtubeapi.Caption{
			Id:      trackID,
			Snippet: &youtubeapi.CaptionSnippet{VideoId: videoID, Language: "en", TrackKind: "standard"},
		})
	}
	writeJSON(w, resp)
}

func (s *Server) handleCaptionDownload(w http.ResponseWriter, trackID string) {
	s.CaptionDownloadCalls++
	body, ok := s.CaptionBodies[trackID]
	if !ok {
		writeError(w, http.StatusForbidden, "the permissions associated with the request are not sufficient to download the caption track")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprint(w, body)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}
