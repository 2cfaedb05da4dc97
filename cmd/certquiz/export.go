package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"certquiz"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	info, err := deps.Exams.LoadExamInfo(deps.Ctx, c.Exam)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}
	questions, err := deps.Exams.LoadQuestions(deps.Ctx, c.Exam)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}

	var sheet strings.Builder
	writeHeader(&sheet, info)
	for _, q := range questions {
		c.writeQuestion(deps, &sheet, q)
	}

	var out io.Writer = deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot create %s: %v\n", c.Output, err)
			return err
		}
		defer f.Close()
		out = f
	}

	if _, err := io.WriteString(out, sheet.String()); err != nil {
		return err
	}
	if c.Output != "" {
		fmt.Fprintf(deps.Stdout, "Wrote %d questions to %s\n", len(questions), c.Output)
	}
	return nil
}

func writeHeader(sheet *strings.Builder, info *certquiz.ExamInfo) {
	fmt.Fprintf(sheet, "# %s\n\n", info.Name)
	if info.Vendor != "" || info.Code != "" {
		fmt.Fprintf(sheet, "%s %s\n\n", info.Vendor, info.Code)
	}
	fmt.Fprintf(sheet, "%d questions", info.TotalQuestions)
	if !info.LastUpdated.IsZero() {
		fmt.Fprintf(sheet, ", extracted %s", info.LastUpdated.Format("2006-01-02"))
	}
	sheet.WriteString("\n\n")
}

func (c *ExportCmd) writeQuestion(deps *Dependencies, sheet *strings.Builder, q *certquiz.Question) {
	fmt.Fprintf(sheet, "## Question %d\n\n", q.Number)
	if q.Topic != "" && q.Topic != "General" {
		fmt.Fprintf(sheet, "Topic: %s\n\n", q.Topic)
	}
	fmt.Fprintf(sheet, "%s\n\n", markdown(deps.Converter, q.Text))

	for _, choice := range q.Choices {
		marker := " "
		if choice.Letter == q.CorrectAnswer {
			marker = "x"
		}
		fmt.Fprintf(sheet, "- [%s] **%s)** %s\n", marker, choice.Letter, markdown(deps.Converter, choice.Text))
	}
	sheet.WriteString("\n")

	if q.Explanation != "" {
		fmt.Fprintf(sheet, "**Explanation:** %s\n\n", markdown(deps.Converter, q.Explanation))
	}
	if q.VotingData.TotalVotes > 0 {
		fmt.Fprintf(sheet, "**Community votes** (%d): %s\n\n",
			q.VotingData.TotalVotes, formatVotes(q.VotingData.VoteDistribution))
	}

	if c.Discussions {
		c.writeDiscussion(deps, sheet, q)
	}
}

func (c *ExportCmd) writeDiscussion(deps *Dependencies, sheet *strings.Builder, q *certquiz.Question) {
	discussion, err := deps.Exams.LoadDiscussion(deps.Ctx, c.Exam, q.ID)
	if err != nil {
		// Most questions have no stored discussion.
		return
	}
	if len(discussion.Comments) == 0 {
		return
	}

	fmt.Fprintf(sheet, "### Discussion (%d comments)\n\n", discussion.TotalComments)
	for _, comment := range discussion.Comments {
		fmt.Fprintf(sheet, "> **%s**", comment.Author)
		if comment.Upvotes > 0 {
			fmt.Fprintf(sheet, " (+%d)", comment.Upvotes)
		}
		fmt.Fprintf(sheet, ": %s\n", markdown(deps.Converter, comment.Content))
	}
	sheet.WriteString("\n")
}

// markdown converts extracted text, which may contain HTML fragments,
// to Markdown. Falls back to the raw text if conversion fails.
func markdown(converter certquiz.Converter, text string) string {
	converted, err := converter.Convert(text)
	if err != nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(converted)
}
