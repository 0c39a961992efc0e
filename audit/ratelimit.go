package audit

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/docpeek"
	"golang.org/x/time/rate"
)

var _ docpeek.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host may proceed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ docpeek.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits on a DomainLimiter for the URL's host before each
// fetch.
type LimitedFetcher struct {
	Fetcher docpeek.Fetcher
	Limiter docpeek.DomainLimiter
}

// Fetch waits for the host's turn, then delegates.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docpeek.Errorf(docpeek.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if err := f.Limiter.Wait(ctx, u.Host); err != nil {
		return "", err
	}
	return f.Fetcher.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LimitedFetcher) Close() error {
	return f.Fetcher.Close()
}
