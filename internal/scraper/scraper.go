// Package scraper implements the search, detail and caption stages of a scrape run.
//
// Every stage degrades instead of failing: an upstream error is logged, recorded in the
// stage's Diagnostics, and the stage returns whatever it has.
package scraper

import (
	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
)

// MaxCaptionWorkers caps the caption worker pool
const MaxCaptionWorkers = 16

// Scraper runs the stages against a VideoAPI
type Scraper struct {
	api            youtubesvc.VideoAPI
	captionWorkers int
}

// Option configures a Scraper
type Option func(*Scraper)

// WithCaptionWorkers sets how many caption lookups of one batch run at once.
// Values outside [1, MaxCaptionWorkers] are clamped.
func WithCaptionWorkers(n int) Option {
	return func(s *Scraper) {
		switch {
		case n < 1:
			n = 1
		case n > MaxCaptionWorkers:
			n = MaxCaptionWorkers
		}
		s.captionWorkers = n
	}
}

// New creates a Scraper. Caption lookups are sequential unless WithCaptionWorkers is given.
func New(api youtubesvc.VideoAPI, opts ...Option) *Scraper {
	s := &Scraper{api: api, captionWorkers: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
