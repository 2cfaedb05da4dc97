package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"certquiz"
	"certquiz/goquery"

	"golang.org/x/sync/errgroup"
)

// Frontier sizing for pagination discovery.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// DefaultMaxPages limits a single scrape to prevent runaway crawls.
const DefaultMaxPages = 1000

// Page is one fetched exam page.
type Page struct {
	URL    string
	HTML   string
	Number int
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(fetched int, url string, err error)

// Scraper fetches all pages of a paginated exam listing. Starting from
// a base URL it discovers pagination links, dedups them through a Bloom
// filter frontier, and fetches pages in bounded-concurrency waves
// behind a per-domain rate limit. Pages fetched later can reveal
// further pagination links; the scrape ends when the frontier drains
// or MaxPages is reached.
type Scraper struct {
	Fetcher     certquiz.Fetcher
	RateLimiter certquiz.PageLimiter
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
	MaxPages    int
}

// FetchExamPages fetches the base URL and every discovered pagination
// page, in discovery order. Individual page failures are logged and
// skipped; an error is returned only when no page could be fetched.
func (s *Scraper) FetchExamPages(ctx context.Context, baseURL string, progress ProgressFunc) ([]Page, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, certquiz.Errorf(certquiz.EINVALID, "invalid exam URL %q: %v", baseURL, err)
	}

	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(baseURL)

	var pages []Page
	var lastErr error

	for {
		wave := frontier.PopAll()
		if len(wave) == 0 {
			break
		}
		if remaining := maxPages - len(pages); len(wave) > remaining {
			wave = wave[:remaining]
		}

		results := make([]fetchResult, len(wave))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, pageURL := range wave {
			i, pageURL := i, pageURL
			g.Go(func() error {
				results[i] = s.fetchPage(gctx, pageURL, delays)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return pages, err
		}
		if ctx.Err() != nil {
			return pages, ctx.Err()
		}

		for _, result := range results {
			if progress != nil {
				progress(len(pages), result.url, result.err)
			}
			if result.err != nil {
				lastErr = result.err
				s.logger().Warn("page fetch failed", "url", result.url, "error", result.err)
				continue
			}

			pages = append(pages, Page{
				URL:    result.url,
				HTML:   result.html,
				Number: len(pages) + 1,
			})

			links, err := goquery.DiscoverPages(result.html, result.url)
			if err != nil {
				continue
			}
			for _, link := range links {
				frontier.Push(link)
			}
		}

		if len(pages) >= maxPages {
			break
		}
	}

	if len(pages) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, certquiz.Errorf(certquiz.ENOTFOUND, "no pages fetched from %q", baseURL)
	}
	return pages, nil
}

type fetchResult struct {
	url  string
	html string
	err  error
}

func (s *Scraper) fetchPage(ctx context.Context, pageURL string, delays []time.Duration) fetchResult {
	result := fetchResult{url: pageURL}

	if s.RateLimiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := s.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, s.Logger, delays)
	if err != nil {
		result.err = err
		return result
	}
	result.html = html
	return result
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
