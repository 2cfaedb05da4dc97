package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certquiz"
	main "certquiz/cmd/certquiz"
	"certquiz/crawl"
	"certquiz/extract"
	"certquiz/goquery"
	"certquiz/mock"
)

func questionCardHTML(number int) string {
	return fmt.Sprintf(`<div class="exam-question-card">
	<div class="card-header">Question #%d</div>
	<div class="question-body">What is item %d?</div>
	<div class="choice">A. Foo</div>
	<div class="choice">B. Bar</div>
	<span class="correct-answer">A</span>
</div>`, number, number)
}

// examCollector is a thread-safe in-memory ExamService for command tests.
type examCollector struct {
	mu        sync.Mutex
	questions []*certquiz.Question
	info      *certquiz.ExamInfo
	report    *certquiz.ExtractionReport
}

func (c *examCollector) service() *mock.ExamService {
	return &mock.ExamService{
		SaveQuestionFn: func(_ context.Context, _ string, q *certquiz.Question) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.questions = append(c.questions, q)
			return nil
		},
		SaveExamInfoFn: func(_ context.Context, info *certquiz.ExamInfo) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.info = info
			return nil
		},
		SaveReportFn: func(_ context.Context, _ string, report *certquiz.ExtractionReport) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.report = report
			return nil
		},
	}
}

func testPipeline(exams certquiz.ExamService) *extract.Pipeline {
	return &extract.Pipeline{
		Locator:     goquery.NewCardLocator(),
		Traditional: goquery.NewExtractor(),
		Validator:   &extract.Validator{},
		Exams:       exams,
	}
}

func TestExtractLocalCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts questions from saved pages", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page1 := "<html><body>" + questionCardHTML(1) + "</body></html>"
		page2 := "<html><body>" + questionCardHTML(2) + "</body></html>"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "page_1.html"), []byte(page1), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "page_2.html"), []byte(page2), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

		collector := &examCollector{}
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      testContext(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Exams:    collector.service(),
			Pipeline: testPipeline(collector.service()),
		}

		cmd := &main.ExtractLocalCmd{Dir: dir, Name: "aws-saa-c03", Vendor: "Amazon", Code: "SAA-C03"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Loaded 2 pages")
		assert.Contains(t, output, "Found 2 question cards")
		assert.Contains(t, output, "Extracted 2 of 2 questions")

		require.Len(t, collector.questions, 2)
		assert.Equal(t, 1, collector.questions[0].Number)
		assert.Equal(t, 2, collector.questions[1].Number)
		assert.Equal(t, "page_1.html", collector.questions[0].Metadata.SourceURL)

		require.NotNil(t, collector.info)
		assert.Equal(t, "Amazon", collector.info.Vendor)
		assert.Equal(t, 2, collector.info.TotalQuestions)

		require.NotNil(t, collector.report)
		assert.True(t, collector.report.Success)
	})

	t.Run("errors when directory holds no HTML", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.ExtractLocalCmd{Dir: dir, Name: "aws-saa-c03"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, certquiz.ENOTFOUND, certquiz.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no HTML files")
	})

	t.Run("fails when no questions could be extracted", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.html"),
			[]byte("<html><body><p>nothing here</p></body></html>"), 0644))

		collector := &examCollector{}

		deps := &main.Dependencies{
			Ctx:      testContext(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Exams:    collector.service(),
			Pipeline: testPipeline(collector.service()),
		}

		cmd := &main.ExtractLocalCmd{Dir: dir, Name: "aws-saa-c03"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, certquiz.EINTERNAL, certquiz.ErrorCode(err))
	})
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("fetches pages and extracts questions", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html><body>" + questionCardHTML(1) + "</body></html>", nil
			},
			CloseFn: func() error { return nil },
		}

		collector := &examCollector{}
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      testContext(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Exams:    collector.service(),
			Pipeline: testPipeline(collector.service()),
			Scraper: &crawl.Scraper{
				Fetcher:     fetcher,
				RateLimiter: crawl.NewDomainLimiter(1000),
				Concurrency: 1,
				MaxPages:    5,
			},
		}

		cmd := &main.ExtractCmd{URL: "https://example.com/exam", Name: "aws-saa-c03"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Fetching pages from https://example.com/exam")
		assert.Contains(t, output, "Fetched page 1")
		assert.Contains(t, output, "Extracted 1 of 1 questions")

		require.Len(t, collector.questions, 1)
		require.NotNil(t, collector.info)
		assert.Equal(t, "https://example.com/exam", collector.info.URL)
	})

	t.Run("reports fetch failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", certquiz.Errorf(certquiz.EUNAVAILABLE, "connection refused")
			},
			CloseFn: func() error { return nil },
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Scraper: &crawl.Scraper{
				Fetcher:     fetcher,
				RateLimiter: crawl.NewDomainLimiter(1000),
				Concurrency: 1,
				MaxPages:    5,
				RetryDelays: []time.Duration{},
			},
		}

		cmd := &main.ExtractCmd{URL: "https://example.com/exam", Name: "aws-saa-c03"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, certquiz.EUNAVAILABLE, certquiz.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
