package scraper

import (
	"context"
	"testing"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
	"github.com/gnzdotmx/ytdatascraper/internal/services/youtube/mocks"
	"github.com/gnzdotmx/ytdatascraper/internal/services/youtube/youtubetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestBatches(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantSizes []int
	}{
		{name: "empty", n: 0, wantSizes: []int{}},
		{name: "partial", n: 7, wantSizes: []int{7}},
		{name: "exact", n: 100, wantSizes: []int{50, 50}},
		{name: "remainder", n: 120, wantSizes: []int{50, 50, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := youtubetest.IDs("v", tt.n)
			batches := Batches(ids, 50)

			sizes := make([]int, 0, len(batches))
			var flat []string
			for _, b := range batches {
				sizes = append(sizes, len(b))
				flat = append(flat, b...)
			}
			assert.Equal(t, tt.wantSizes, sizes)
			if tt.n > 0 {
				assert.Equal(t, ids, flat)
			}
		})
	}
}

func TestFetchDetails_OneRequestPerBatch(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	ids := youtubetest.IDs("v", 50)
	details := make([]youtubesvc.VideoDetail, len(ids))
	for i, id := range ids {
		details[i] = youtubesvc.VideoDetail{ID: id}
	}
	api.On("ListVideos", mock.Anything, ids).Return(details, nil).Once()

	out := New(api).FetchDetails(context.Background(), ids)

	assert.Len(t, out.Details, 50)
	assert.Equal(t, 1, out.Requests)
	assert.Empty(t, out.Failures)
}

func TestFetchDetails_FailureDropsBatch(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	ids := []string{"a", "b", "c"}
	api.On("ListVideos", mock.Anything, ids).Return(nil, &googleapi.Error{Code: 500}).Once()

	out := New(api).FetchDetails(context.Background(), ids)

	assert.Empty(t, out.Details)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, StageDetails, out.Failures[0].Stage)
	assert.Equal(t, "a..c (3 ids)", out.Failures[0].Target)
	assert.Equal(t, 500, out.Failures[0].StatusCode())
}

func TestFetchDetails_EmptyBatch(t *testing.T) {
	api := mocks.NewVideoAPI(t)

	out := New(api).FetchDetails(context.Background(), nil)

	assert.Empty(t, out.Details)
	assert.Zero(t, out.Requests)
}
