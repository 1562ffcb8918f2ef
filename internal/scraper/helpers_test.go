package scraper

import (
	"github.com/gnzdotmx/ytdatascraper/internal/services/youtube/youtubetest"
	"google.golang.org/api/option"
)

func optionEndpoint(srv *youtubetest.Server) option.ClientOption {
	return option.WithEndpoint(srv.Endpoint())
}
