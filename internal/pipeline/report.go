package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gnzdotmx/ytdatascraper/internal/export"
	"github.com/gnzdotmx/ytdatascraper/internal/scraper"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Report summarizes one run, including every upstream call it degraded past
type Report struct {
	RunID         string
	Query         string
	TargetCount   int
	SearchPages   int
	Stubs         int
	Batches       int
	FailedBatches int
	Records       int
	CaptionsFound int
	OutputPath    string
	// Truncated lists workbook cells shortened to fit the format
	Truncated     []export.TruncatedCell
	StartedAt     time.Time
	Duration      time.Duration

	scraper.Diagnostics
}

// Partial reports whether any upstream call failed
func (r *Report) Partial() bool {
	return len(r.Failures) > 0
}

// Render writes the summary as a table
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Run " + r.RunID)

	t.AppendRows([]table.Row{
		{"Query", r.Query},
		{"Target count", r.TargetCount},
		{"Search pages", r.SearchPages},
		{"Videos found", r.Stubs},
		{"Detail batches", fmt.Sprintf("%d (%d failed)", r.Batches, r.FailedBatches)},
		{"Rows exported", r.Records},
		{"Captions found", r.CaptionsFound},
		{"Upstream requests", r.Requests},
		{"Failed requests", failureSummary(r.Diagnostics)},
		{"Output", r.OutputPath},
		{"Truncated cells", truncatedSummary(r.Truncated)},
		{"Duration", r.Duration.Round(time.Millisecond).String()},
	})
	t.Render()
}

func failureSummary(d scraper.Diagnostics) string {
	if len(d.Failures) == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (search %d, details %d, captions %d, caption content %d)",
		len(d.Failures),
		d.FailureCount(scraper.StageSearch),
		d.FailureCount(scraper.StageDetails),
		d.FailureCount(scraper.StageCaptionList),
		d.FailureCount(scraper.StageCaptionContent),
	)
}

func truncatedSummary(cells []export.TruncatedCell) string {
	if len(cells) == 0 {
		return "0"
	}
	first := cells[0]
	return fmt.Sprintf("%d (first: row %d %q, %d chars)", len(cells), first.Row, first.Column, first.Length)
}

// RenderFailures lists failed upstream calls, at most limit of them (0 for all)
func (r *Report) RenderFailures(w io.Writer, limit int) {
	if len(r.Failures) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stage", "Target", "Status", "Error"})

	for i, f := range r.Failures {
		if limit > 0 && i == limit {
			t.AppendFooter(table.Row{"", fmt.Sprintf("%d more", len(r.Failures)-limit), "", ""})
			break
		}
		status := "-"
		if code := f.StatusCode(); code != 0 {
			status = strconv.Itoa(code)
		}
		t.AppendRow(table.Row{f.Stage, f.Target, status, f.Err})
	}
	t.Render()
}
