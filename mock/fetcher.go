package mock

import (
	"context"

	"certquiz"
)

var _ certquiz.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of certquiz.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ certquiz.PageLimiter = (*PageLimiter)(nil)

// PageLimiter is a mock implementation of certquiz.PageLimiter.
type PageLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *PageLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
