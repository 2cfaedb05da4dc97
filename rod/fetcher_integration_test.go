//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"certquiz"
	"certquiz/rod"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements certquiz.Fetcher.
var _ certquiz.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_WaitsForRenderedCards(t *testing.T) {
	t.Parallel()

	// Serve a page that renders its question card with JavaScript.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Exam</title></head>
<body>
<div id="root"></div>
<script>
document.getElementById('root').innerHTML =
  '<div class="question-card"><p>Question #1</p><p>What is rendered?</p></div>';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "question-card")
	assert.Contains(t, html, "Question #1")
}

func TestFetcher_Fetch_PageWithoutCards(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>No questions here</p></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithRenderWait(200 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "No questions here")
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
