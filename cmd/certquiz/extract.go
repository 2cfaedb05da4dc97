package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"certquiz"
	"certquiz/extract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Fetching pages from %s ...\n", c.URL)

	crawled, err := deps.Scraper.FetchExamPages(deps.Ctx, c.URL, func(fetched int, url string, err error) {
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: failed to fetch %s: %s\n", url, certquiz.ErrorMessage(err))
			return
		}
		fmt.Fprintf(deps.Stdout, "Fetched page %d: %s\n", fetched+1, url)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}

	pages := make([]extract.Page, len(crawled))
	for i, p := range crawled {
		pages[i] = extract.Page{Name: p.URL, HTML: p.HTML, Number: p.Number}
	}

	info := &certquiz.ExamInfo{
		Name:   c.Name,
		Vendor: c.Vendor,
		Code:   c.Code,
		URL:    c.URL,
	}

	return runPipeline(deps, info, pages)
}

// Run executes the extract-local command.
func (c *ExtractLocalCmd) Run(deps *Dependencies) error {
	pages, err := loadPages(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}
	if len(pages) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no HTML files found in %s\n", c.Dir)
		return certquiz.Errorf(certquiz.ENOTFOUND, "no HTML files found in %s", c.Dir)
	}
	fmt.Fprintf(deps.Stdout, "Loaded %d pages from %s\n", len(pages), c.Dir)

	info := &certquiz.ExamInfo{
		Name:   c.Name,
		Vendor: c.Vendor,
		Code:   c.Code,
	}

	return runPipeline(deps, info, pages)
}

// runPipeline drives an extraction run with progress reporting and
// prints the final summary.
func runPipeline(deps *Dependencies, info *certquiz.ExamInfo, pages []extract.Page) error {
	result, err := deps.Pipeline.Run(deps.Ctx, info, pages, progressPrinter(deps.Stdout, deps.Stderr))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nExtracted %d of %d questions (%d via fallback, %d failed)\n",
		result.Saved, result.Cards, result.Fallbacks, result.Failed)
	if result.Discussions > 0 {
		fmt.Fprintf(deps.Stdout, "Saved %d discussion threads\n", result.Discussions)
	}
	if !result.Success {
		fmt.Fprintf(deps.Stderr, "error: no questions extracted for %q\n", info.Name)
		return certquiz.Errorf(certquiz.EINTERNAL, "no questions extracted for %q", info.Name)
	}
	return nil
}

// loadPages reads all HTML files from dir, sorted by filename. Page
// numbers follow the sorted order.
func loadPages(dir string) ([]extract.Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, certquiz.Errorf(certquiz.ENOTFOUND, "cannot read directory %s: %v", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".html" || ext == ".htm" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	pages := make([]extract.Page, 0, len(names))
	for i, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, certquiz.Errorf(certquiz.EINTERNAL, "cannot read %s: %v", name, err)
		}
		pages = append(pages, extract.Page{Name: name, HTML: string(data), Number: i + 1})
	}
	return pages, nil
}

func progressPrinter(stdout, stderr io.Writer) extract.ProgressFunc {
	return func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			fmt.Fprintf(stdout, "Found %d question cards\n", event.Total)
		case extract.ProgressCompleted:
			fmt.Fprintf(stdout, "[%d/%d] question %d\n", event.Completed, event.Total, event.Question)
		case extract.ProgressFallback:
			fmt.Fprintf(stdout, "[%d/%d] question %d (fallback)\n", event.Completed, event.Total, event.Question)
		case extract.ProgressFailed:
			fmt.Fprintf(stderr, "warning: %s\n", certquiz.ErrorMessage(event.Error))
		}
	}
}
