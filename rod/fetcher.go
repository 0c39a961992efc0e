// Package rod fetches pages through a headless Chrome browser, for sites
// whose preview markers are only present after client-side rendering.
package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/docpeek"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docpeek.Fetcher at compile time.
var _ docpeek.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *browser
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each fetch. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher
// backed by it. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(DefaultMaxPages)
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EUNAVAILABLE, "%v", err)
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to url, waits for the page to load and returns the
// rendered HTML. Context errors are returned as is.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	b := f.browser.acquire()
	if b == nil {
		return "", docpeek.Errorf(docpeek.EINVALID, "fetcher is closed")
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", f.wrap(ctx, url, err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", f.wrap(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", f.wrap(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", f.wrap(ctx, url, err)
	}
	return html, nil
}

func (f *Fetcher) wrap(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return docpeek.Errorf(docpeek.EUNAVAILABLE, "rendering %s: %v", url, err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher, or zero once
// the fetcher is closed.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}
