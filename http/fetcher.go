// Package http provides an HTTP-based implementation of docpeek.Fetcher
// for retrieving built pages from a running site.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docpeek"
)

// DefaultMaxBytes bounds how much of a response body is read.
const DefaultMaxBytes = 10 << 20

// Ensure Fetcher implements docpeek.Fetcher at compile time.
var _ docpeek.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies using HTTP GET requests.
// Each call makes exactly one attempt; there are no retries.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets a timeout for each request.
// By default no timeout is imposed and a stalled request simply never
// produces a preview.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes limits how many bytes of a body are read.
// Longer bodies are truncated. Defaults to DefaultMaxBytes.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL.
// Any non-200 status and any transport failure are reported as EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docpeek.Errorf(docpeek.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", docpeek.Errorf(docpeek.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", docpeek.Errorf(docpeek.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", docpeek.Errorf(docpeek.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
