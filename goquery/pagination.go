package goquery

import (
	"net/url"
	"sort"
	"strings"

	"certquiz"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverPages returns the exam page URLs reachable from an exam's
// first page, including the page itself. Pagination anchors inside a
// .pagination container win; failing that, any anchor whose text is
// purely numeric is treated as a page link. Results are deduplicated
// and sorted for a stable multi-page scan order.
func DiscoverPages(rawHTML, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, certquiz.Errorf(certquiz.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, certquiz.Errorf(certquiz.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := map[string]bool{baseURL: true}
	pages := []string{baseURL}

	collect := func(s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" || href == "#" || strings.HasPrefix(href, "javascript:") {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		pages = append(pages, resolved)
	}

	doc.Find("div.pagination a[href], nav.pagination a[href]").Each(func(_ int, s *goquery.Selection) {
		collect(s)
	})

	// No pagination container: fall back to numeric-text anchors.
	if len(pages) == 1 {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			if isNumeric(strings.TrimSpace(s.Text())) {
				collect(s)
			}
		})
	}

	sort.Strings(pages)
	return pages, nil
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
