// Package audit checks every previewable link of a set of pages, so that
// links whose hover preview would come up empty can be found before a
// reader does.
package audit

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docpeek"
	"github.com/fwojciec/docpeek/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of fetches run at once when Auditor
// does not set one.
const DefaultConcurrency = 10

// defaultExpectedKeys sizes the dedup filter when Auditor does not.
const defaultExpectedKeys = 100000

// Auditor resolves the preview of every distinct key linked from a set of
// pages.
type Auditor struct {
	// Fetcher retrieves the pages being audited.
	Fetcher docpeek.Fetcher

	// Links finds the previewable links of each page.
	Links docpeek.LinkExtractor

	// Previewer resolves each distinct key.
	Previewer docpeek.Previewer

	Concurrency  int
	ExpectedKeys uint
}

// Result is the audit outcome for one distinct preview key.
type Result struct {
	Key docpeek.PreviewKey

	// Page is the first page the key was linked from.
	Page string

	// Text is the resolved preview, empty when Err is set.
	Text string

	// Digest identifies Text across runs.
	Digest string

	Err error
}

// PageFailure records a page that could not be fetched or scanned.
type PageFailure struct {
	URL string
	Err error
}

// Report holds the outcome of an audit.
type Report struct {
	Links   int
	Results []Result
	Pages   []PageFailure
}

// Missing returns the results with no preview.
func (r *Report) Missing() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressResolved
	ProgressMissing
	ProgressFinished
)

// ProgressEvent reports progress while keys are resolved.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Key       string
	Error     error
}

// ProgressFunc is a callback for reporting audit progress. It is called
// from concurrent goroutines.
type ProgressFunc func(event ProgressEvent)

type pageLinks struct {
	links []docpeek.PreviewLink
	err   error
}

// Audit scans pages for previewable links and resolves each distinct key
// once. Results are in the order keys were first linked. Only a canceled
// context fails the audit as a whole.
func (a *Auditor) Audit(ctx context.Context, pages []string, progress ProgressFunc) (*Report, error) {
	scanned, err := a.scan(ctx, pages)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	seen := bloom.NewFilter(a.expectedKeys(), bloom.DefaultFalsePositiveRate)
	for i, page := range pages {
		if scanned[i].err != nil {
			report.Pages = append(report.Pages, PageFailure{URL: page, Err: scanned[i].err})
			continue
		}
		for _, link := range scanned[i].links {
			report.Links++
			if seen.Seen(link.Key.String()) {
				continue
			}
			report.Results = append(report.Results, Result{Key: link.Key, Page: page})
		}
	}

	if err := a.resolve(ctx, report.Results, progress); err != nil {
		return nil, err
	}
	return report, nil
}

// scan fetches pages concurrently and extracts their links.
func (a *Auditor) scan(ctx context.Context, pages []string) ([]pageLinks, error) {
	out := make([]pageLinks, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency())
	for i, page := range pages {
		g.Go(func() error {
			html, err := a.Fetcher.Fetch(gctx, page)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				out[i].err = err
				return nil
			}
			out[i].links, out[i].err = a.Links.ExtractPreviewLinks(html, page)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

// resolve fills in each result's preview concurrently.
func (a *Auditor) resolve(ctx context.Context, results []Result, progress ProgressFunc) error {
	total := len(results)
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency())
	for i := range results {
		res := &results[i]
		g.Go(func() error {
			text, err := a.Previewer.Preview(gctx, res.Key)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			e := ProgressEvent{Key: res.Key.String(), Total: total}
			if err != nil {
				res.Err = err
				e.Type = ProgressMissing
				e.Error = err
			} else {
				res.Text = text
				res.Digest = Digest(text)
				e.Type = ProgressResolved
			}
			e.Completed = int(completed.Add(1))
			notify(e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return nil
}

func (a *Auditor) concurrency() int {
	if a.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return a.Concurrency
}

func (a *Auditor) expectedKeys() uint {
	if a.ExpectedKeys == 0 {
		return defaultExpectedKeys
	}
	return a.ExpectedKeys
}

// Digest returns a short stable fingerprint of preview text, for comparing
// previews across builds.
func Digest(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
