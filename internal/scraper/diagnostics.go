package scraper

import (
	"fmt"

	youtubesvc "github.com/gnzdotmx/ytdatascraper/internal/services/youtube"
)

// Stage names an upstream call site
type Stage string

const (
	StageSearch         Stage = "search"
	StageDetails        Stage = "details"
	StageCaptionList    Stage = "captions"
	StageCaptionContent Stage = "caption_content"
)

// Failure is one upstream call that was skipped over
type Failure struct {
	Stage  Stage
	Target string // page token, batch range or video id
	Err    error
}

// StatusCode is the HTTP status of the failed call, 0 for transport errors
func (f Failure) StatusCode() int {
	return youtubesvc.StatusCode(f.Err)
}

func (f Failure) String() string {
	return fmt.Sprintf("%s %s: %v", f.Stage, f.Target, f.Err)
}

// Diagnostics counts the upstream requests a stage issued and the ones it degraded past
type Diagnostics struct {
	Requests int
	Failures []Failure
}

func (d *Diagnostics) fail(stage Stage, target string, err error) {
	d.Failures = append(d.Failures, Failure{Stage: stage, Target: target, Err: err})
}

// Merge adds other's counts into d
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Requests += other.Requests
	d.Failures = append(d.Failures, other.Failures...)
}

// FailureCount returns how many failures were recorded for stage
func (d Diagnostics) FailureCount(stage Stage) int {
	n := 0
	for _, f := range d.Failures {
		if f.Stage == stage {
			n++
		}
	}
	return n
}
