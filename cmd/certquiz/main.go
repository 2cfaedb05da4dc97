package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"certquiz"
	"certquiz/crawl"
	"certquiz/extract"
	"certquiz/fs"
	"certquiz/gemini"
	"certquiz/goquery"
	cqhttp "certquiz/http"
	"certquiz/htmltomarkdown"
	"certquiz/quiz"
	"certquiz/rod"
	cqslog "certquiz/slog"
	"certquiz/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Data directory holding exam files and the session database.
	// Set before calling Run().
	DataDir string

	// SQLite database used for quiz session history.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ExamService    certquiz.ExamService
	SessionService certquiz.SessionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DataDir: defaultDataDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("certquiz"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'certquiz --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Core services shared by every command.
	m.ExamService = fs.NewExamStore(m.DataDir)

	m.DB = sqlite.NewDB(filepath.Join(m.DataDir, "sessions.db"))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CERTQUIZ_DATA_DIR to use a different data directory\n")
		return fmt.Errorf("failed to open session database in %q: %w", m.DataDir, err)
	}
	defer m.Close()
	m.SessionService = sqlite.NewSessionService(m.DB)

	deps.Exams = m.ExamService
	deps.Sessions = m.SessionService
	deps.Engine = quiz.NewEngine()
	deps.Converter = htmltomarkdown.NewConverter()

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Wire command-specific dependencies based on command
	if cmd == "extract" || cmd == "extract-local" {
		pipeline, err := newPipeline(ctx, deps.Exams, logger, stderr)
		if err != nil {
			return err
		}
		deps.Pipeline = pipeline
	}

	if cmd == "extract" {
		var fetcher certquiz.Fetcher
		if cli.Extract.Browser {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = cqhttp.NewFetcher()
		}
		defer fetcher.Close()

		deps.Pipeline.MaxQuestions = cli.Extract.MaxQuestions
		deps.Scraper = &crawl.Scraper{
			Fetcher:     cqslog.NewLoggingFetcher(fetcher, logger),
			RateLimiter: crawl.NewDomainLimiter(cli.Extract.Rate),
			Logger:      logger,
			Concurrency: cli.Extract.Concurrency,
			MaxPages:    cli.Extract.MaxPages,
		}
	}

	if cmd == "extract-local" {
		deps.Pipeline.MaxQuestions = cli.ExtractLocal.MaxQuestions
	}

	return kongCtx.Run(deps)
}

// newPipeline builds the extraction pipeline. The structured extractor
// degrades to a no-op when GEMINI_API_KEY is unset; the traditional
// extractor then handles every card.
func newPipeline(ctx context.Context, exams certquiz.ExamService, logger *slog.Logger, stderr io.Writer) (*extract.Pipeline, error) {
	var client *genai.Client
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		c, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		client = c
	} else {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set; using traditional extraction only")
	}

	structured := gemini.NewExtractor(client, gemini.WithCache())
	traditional := goquery.NewExtractor()

	return &extract.Pipeline{
		Locator:     goquery.NewCardLocator(),
		Structured:  cqslog.NewLoggingExtractor(structured, logger),
		Traditional: cqslog.NewLoggingExtractor(traditional, logger),
		Discussions: structured,
		Validator:   &extract.Validator{Voting: traditional, Logger: logger},
		Exams:       exams,
		Logger:      logger,
	}, nil
}

func defaultDataDir() string {
	if dir := os.Getenv("CERTQUIZ_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "certquiz-data"
	}
	dir := filepath.Join(home, ".certquiz")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
