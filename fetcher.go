package certquiz

import "context"

// Fetcher retrieves HTML content from URLs. Implementations hide the
// transport: plain HTTP for static pages, a headless browser for pages
// that only render their question cards client-side.
type Fetcher interface {
	// Fetch retrieves the HTML content from the given URL.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// PageLimiter provides per-domain rate limiting for page fetches.
type PageLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
