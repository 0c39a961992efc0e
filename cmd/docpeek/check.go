package main

import (
	"fmt"

	"github.com/fwojciec/docpeek"
	"github.com/fwojciec/docpeek/audit"
)

// Run executes the check command. It fails when any link has no preview,
// so that it can gate a site build.
func (c *CheckCmd) Run(deps *Dependencies) error {
	pages := c.URLs
	if len(pages) == 0 {
		if deps.Base == "" {
			err := fmt.Errorf("no pages given: pass page URLs or --base")
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		var err error
		pages, err = deps.Pages.Pages(deps.Ctx, deps.Base)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docpeek.ErrorMessage(err))
			return err
		}
	}
	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Checking %d pages\n", len(pages))

	a := &audit.Auditor{
		Fetcher:      deps.Fetcher,
		Links:        deps.Links,
		Previewer:    deps.Previewer,
		Concurrency:  deps.Concurrency,
		ExpectedKeys: uint(len(pages)) * 50,
	}
	progress := func(event audit.ProgressEvent) {
		if event.Type == audit.ProgressStarted {
			fmt.Fprintf(deps.Stdout, "  Found %d preview targets\n", event.Total)
		}
	}

	report, err := a.Audit(deps.Ctx, pages, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error checking: %v\n", err)
		return err
	}

	for _, p := range report.Pages {
		fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.URL, docpeek.ErrorMessage(p.Err))
	}
	for _, r := range report.Results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stdout, "  missing  %s (%s) linked from %s\n", r.Key, docpeek.ErrorCode(r.Err), r.Page)
		} else if c.Verbose {
			fmt.Fprintf(deps.Stdout, "  ok       %s %s %q\n", r.Key, r.Digest, r.Text)
		}
	}

	if deps.Snapshots != nil {
		if err := c.compare(deps, report); err != nil {
			fmt.Fprintf(deps.Stderr, "error: baseline: %v\n", err)
			return err
		}
	}

	missing := len(report.Missing())
	fmt.Fprintf(deps.Stdout, "Checked %d links, %d targets, %d missing\n", report.Links, len(report.Results), missing)
	if missing > 0 {
		return fmt.Errorf("%d preview targets have no preview", missing)
	}
	return nil
}

// compare reports previews that changed since the last recorded run, then
// records this run.
func (c *CheckCmd) compare(deps *Dependencies, report *audit.Report) error {
	last, err := deps.Snapshots.LatestRun(deps.Ctx)
	if docpeek.ErrorCode(err) == docpeek.ENOTFOUND {
		last = nil
	} else if err != nil {
		return err
	}

	if last != nil {
		cmp, err := audit.Compare(deps.Ctx, deps.Snapshots, report.Results)
		if err != nil {
			return err
		}
		for _, ch := range cmp.Changed {
			fmt.Fprintf(deps.Stdout, "  changed  %s\n    was: %q\n    now: %q\n", ch.Key, ch.Before, ch.After)
		}
		fmt.Fprintf(deps.Stdout, "Since %s: %d changed, %d new\n",
			last.StartedAt.Local().Format("2006-01-02 15:04"), len(cmp.Changed), cmp.Added)
	}

	_, err = audit.Record(deps.Ctx, deps.Snapshots, deps.Base, report.Results)
	return err
}
