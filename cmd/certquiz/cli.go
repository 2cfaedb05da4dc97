package main

import (
	"context"
	"io"

	"certquiz"
	"certquiz/crawl"
	"certquiz/extract"
	"certquiz/quiz"
)

// Dependencies holds all services and I/O writers needed by commands.
// This struct is bound to Kong's context, making dependencies available
// to all command Run() methods.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Exams     certquiz.ExamService
	Sessions  certquiz.SessionService
	Engine    *quiz.Engine
	Converter certquiz.Converter

	// Wired only for the extract commands.
	Scraper  *crawl.Scraper
	Pipeline *extract.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract      ExtractCmd      `cmd:"" help:"Fetch exam pages from a URL and extract questions."`
	ExtractLocal ExtractLocalCmd `cmd:"" name:"extract-local" help:"Extract questions from saved HTML files."`
	Quiz         QuizCmd         `cmd:"" help:"Run an interactive quiz over a stored exam."`
	List         ListCmd         `cmd:"" help:"List stored exams."`
	Validate     ValidateCmd     `cmd:"" help:"Check stored questions for structural problems."`
	Export       ExportCmd       `cmd:"" help:"Render a Markdown study sheet for an exam."`
	Delete       DeleteCmd       `cmd:"" help:"Delete a stored exam and all its records."`
}

// ExtractCmd fetches exam pages from the web and extracts questions.
type ExtractCmd struct {
	URL          string  `arg:"" help:"Base URL of the exam pages."`
	Name         string  `required:"" short:"n" help:"Exam name used for storage."`
	Vendor       string  `help:"Exam vendor (e.g. Amazon, Microsoft)."`
	Code         string  `help:"Exam code (e.g. SAA-C03)."`
	Browser      bool    `help:"Render pages in headless Chrome instead of plain HTTP."`
	Concurrency  int     `default:"3" help:"Concurrent page fetches."`
	Rate         float64 `default:"1.0" help:"Requests per second per domain."`
	MaxPages     int     `default:"50" help:"Maximum pages to fetch."`
	MaxQuestions int     `help:"Stop after this many questions (0 = no limit)."`
}

// ExtractLocalCmd extracts questions from HTML files on disk.
type ExtractLocalCmd struct {
	Dir          string `arg:"" type:"existingdir" help:"Directory of saved HTML pages."`
	Name         string `required:"" short:"n" help:"Exam name used for storage."`
	Vendor       string `help:"Exam vendor."`
	Code         string `help:"Exam code."`
	MaxQuestions int    `help:"Stop after this many questions (0 = no limit)."`
}

// QuizCmd runs an interactive quiz session.
type QuizCmd struct {
	Exam          string  `arg:"" help:"Name of the stored exam."`
	Count         int     `default:"10" help:"Number of questions to ask."`
	Topic         string  `help:"Only ask questions from this topic."`
	TimeLimit     int     `help:"Time limit in seconds (0 = no limit)."`
	MinVotes      int     `help:"Only ask questions with at least this many community votes."`
	MinConfidence float64 `help:"Only ask questions with at least this voting confidence (0-1)."`
	NoShuffle     bool    `help:"Keep questions and choices in stored order."`
	ShowVotes     bool    `help:"Show community vote distribution after each answer."`
	History       int     `help:"Show the N most recent sessions instead of starting a quiz."`
}

// ListCmd lists stored exams.
type ListCmd struct{}

// ValidateCmd checks stored questions for structural problems.
type ValidateCmd struct {
	Exam string `arg:"" help:"Name of the stored exam."`
}

// ExportCmd renders a Markdown study sheet.
type ExportCmd struct {
	Exam        string `arg:"" help:"Name of the stored exam."`
	Output      string `short:"o" help:"Write to a file instead of stdout."`
	Discussions bool   `help:"Include discussion threads."`
}

// DeleteCmd deletes a stored exam.
type DeleteCmd struct {
	Exam  string `arg:"" help:"Name of the stored exam."`
	Force bool   `help:"Confirm deletion."`
}
