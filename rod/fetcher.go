// Package rod provides a headless-Chrome implementation of
// certquiz.Fetcher for exam pages that render question cards with
// JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"certquiz"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderWait bounds how long Fetch waits for question cards to
// appear after the load event. Pages without cards (e.g. the last
// pagination page past the end) simply return their HTML after this.
const DefaultRenderWait = 3 * time.Second

// cardSelector matches the rendered question-card containers.
const cardSelector = ".exam-question-card, .question-card"

// Ensure Fetcher implements certquiz.Fetcher at compile time.
var _ certquiz.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. It waits for question-card containers to render before
// returning, so the locator downstream sees the final markup.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser    *rod.Browser
	renderWait time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRenderWait overrides how long Fetch waits for cards to render.
func WithRenderWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderWait = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f := &Fetcher{browser: browser, renderWait: DefaultRenderWait}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Best effort: give client-side rendering a bounded window to
	// produce the cards. Absence is not an error; the page may
	// legitimately contain none.
	waitCtx, cancel := context.WithTimeout(ctx, f.renderWait)
	_, _ = page.Context(waitCtx).Element(cardSelector)
	cancel()

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
