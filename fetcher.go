package docpeek

import "context"

// Fetcher retrieves the raw body of a page.
type Fetcher interface {
	// Fetch performs a single attempt to retrieve url and returns the body.
	// A non-success response and a transport failure are reported the same
	// way, as an error with code EUNAVAILABLE (or ENOTFOUND for local
	// sources). Implementations never retry.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-host rate limiting for batch fetching.
type DomainLimiter interface {
	// Wait blocks until a request to the host may proceed.
	Wait(ctx context.Context, host string) error
}
