package scraper

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
	"github.com/gnzdotmx/ytdatascraper/internal/services/youtube/mocks"
	"github.com/gnzdotmx/ytdatascraper/internal/services/youtube/youtubetest"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestMain(m *testing.M) {
	utils.SetLogOutput(io.Discard, io.Discard)
	os.Exit(m.Run())
}

func page(ids []string, next string) *youtubesvc.SearchPage {
	return &youtubesvc.SearchPage{VideoIDs: ids, NextPageToken: next}
}

func TestSearch_FullPagesReachTarget(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	ids := youtubetest.IDs("v", 120)

	api.On("SearchPage", mock.Anything, "robotics", int64(50), "").Return(page(ids[:50], "p2"), nil).Once()
	api.On("SearchPage", mock.Anything, "robotics", int64(50), "p2").Return(page(ids[50:100], "p3"), nil).Once()
	api.On("SearchPage", mock.Anything, "robotics", int64(20), "p3").Return(page(ids[100:], "p4"), nil).Once()

	out := New(api).Search(context.Background(), "robotics", 120)

	assert.Len(t, out.Stubs, 120)
	assert.Equal(t, ids, out.IDs())
	assert.Equal(t, 3, out.Pages)
	assert.Equal(t, 3, out.Requests)
	assert.Empty(t, out.Failures)
}

func TestSearch_TokenRunsOutEarly(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	ids := youtubetest.IDs("v", 100)

	api.On("SearchPage", mock.Anything, "robotics", int64(50), "").Return(page(ids[:50], "p2"), nil).Once()
	api.On("SearchPage", mock.Anything, "robotics", int64(50), "p2").Return(page(ids[50:], ""), nil).Once()

	out := New(api).Search(context.Background(), "robotics", 500)

	assert.Len(t, out.Stubs, 100)
	assert.Equal(t, 2, out.Pages)
	assert.Empty(t, out.Failures)
}

func TestSearch_PageSizeNeverExceedsRemaining(t *testing.T) {
	tests := []struct {
		name      string
		target    int
		wantSizes []int
	}{
		{name: "below one page", target: 7, wantSizes: []int{7}},
		{name: "exactly one page", target: 50, wantSizes: []int{50}},
		{name: "one page and a bit", target: 51, wantSizes: []int{50, 1}},
		{name: "three pages", target: 130, wantSizes: []int{50, 50, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := youtubetest.NewServer()
			defer srv.Close()
			srv.SearchIDs = youtubetest.IDs("v", 1000)

			client, err := youtubesvc.NewAPIKeyClient(context.Background(), "k", optionEndpoint(srv))
			require.NoError(t, err)

			out := New(client).Search(context.Background(), "q", tt.target)

			assert.Len(t, out.Stubs, tt.target)
			assert.Equal(t, tt.wantSizes, srv.SearchMaxResults)
			collected := 0
			for _, size := range srv.SearchMaxResults {
				assert.LessOrEqual(t, size, min(50, tt.target-collected))
				collected += size
			}
		})
	}
}

func TestSearch_FailureKeepsPartialResults(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	ids := youtubetest.IDs("v", 50)
	apiErr := &googleapi.Error{Code: 403, Message: "quotaExceeded"}

	api.On("SearchPage", mock.Anything, "robotics", int64(50), "").Return(page(ids, "p2"), nil).Once()
	api.On("SearchPage", mock.Anything, "robotics", int64(50), "p2").Return(nil, apiErr).Once()

	out := New(api).Search(context.Background(), "robotics", 200)

	assert.Len(t, out.Stubs, 50)
	assert.Equal(t, 1, out.Pages)
	assert.Equal(t, 2, out.Requests)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, StageSearch, out.Failures[0].Stage)
	assert.Equal(t, 403, out.Failures[0].StatusCode())
}

func TestSearch_FirstPageFailure(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	api.On("SearchPage", mock.Anything, "robotics", int64(50), "").Return(nil, errors.New("dial tcp: timeout")).Once()

	out := New(api).Search(context.Background(), "robotics", 500)

	assert.Empty(t, out.Stubs)
	assert.Equal(t, 1, out.FailureCount(StageSearch))
	assert.Equal(t, 0, out.Failures[0].StatusCode())
}

func TestSearch_NonPositiveTargetIssuesNoRequest(t *testing.T) {
	api := mocks.NewVideoAPI(t)

	out := New(api).Search(context.Background(), "robotics", 0)

	assert.Empty(t, out.Stubs)
	assert.Zero(t, out.Requests)
	api.AssertNotCalled(t, "SearchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_KeepsDuplicatesAndSkipsMissingIDs(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	api.On("SearchPage", mock.Anything, "q", int64(5), "").Return(page([]string{"a", "", "b"}, "p2"), nil).Once()
	api.On("SearchPage", mock.Anything, "q", int64(3), "p2").Return(page([]string{"b", "c"}, ""), nil).Once()

	out := New(api).Search(context.Background(), "q", 5)

	assert.Equal(t, []string{"a", "b", "b", "c"}, out.IDs())
}

func TestSearch_EmptyPageWithTokenStops(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	api.On("SearchPage", mock.Anything, "q", int64(50), "").Return(page(nil, "again"), nil).Once()

	out := New(api).Search(context.Background(), "q", 100)

	assert.Empty(t, out.Stubs)
	assert.Equal(t, 1, out.Requests)
}

func TestSearch_CancelledContextIssuesNoRequest(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := New(api).Search(ctx, "robotics", 100)

	assert.Empty(t, out.Stubs)
	assert.Zero(t, out.Requests)
	assert.Empty(t, out.Failures)
}

func TestSearch_StopsAfterCancelBetweenPages(t *testing.T) {
	api := mocks.NewVideoAPI(t)
	ids := youtubetest.IDs("v", 50)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api.On("SearchPage", mock.Anything, "robotics", int64(50), "").
		Run(func(mock.Arguments) { cancel() }).
		Return(page(ids, "p2"), nil).Once()

	out := New(api).Search(ctx, "robotics", 100)

	assert.Len(t, out.Stubs, 50)
	assert.Equal(t, 1, out.Requests)
	assert.Empty(t, out.Failures)
}
