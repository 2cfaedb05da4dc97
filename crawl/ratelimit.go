// Package crawl provides exam-page fetching orchestration: pagination
// discovery, per-domain rate limiting, retry with backoff, and bounded
// concurrent fetching. Extraction itself happens downstream and stays
// sequential; only page fetching is concurrent.
package crawl

import (
	"context"
	"sync"

	"certquiz"

	"golang.org/x/time/rate"
)

var _ certquiz.PageLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so requests to different exam hosts
// do not throttle each other. Burst is 1: no bursting within a domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter with the specified requests
// per second limit per domain.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
