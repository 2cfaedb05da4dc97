package main

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"certquiz"
	"certquiz/quiz"
)

// Run executes the quiz command.
func (c *QuizCmd) Run(deps *Dependencies) error {
	if c.History > 0 {
		return c.showHistory(deps)
	}

	pool, err := deps.Exams.LoadQuestions(deps.Ctx, c.Exam)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}

	pool = quiz.FilterQuestions(pool, quiz.Filter{
		Topic:         c.Topic,
		MinVotes:      c.MinVotes,
		MinConfidence: c.MinConfidence,
	})

	settings := certquiz.QuizSettings{
		QuestionCount:         c.Count,
		TimeLimit:             c.TimeLimit,
		RandomizeQuestions:    !c.NoShuffle,
		RandomizeChoices:      !c.NoShuffle,
		ShowExplanations:      true,
		ShowImmediateFeedback: true,
		ShowCommunityVotes:    c.ShowVotes,
		Topic:                 c.Topic,
	}

	session, err := deps.Engine.NewSession(c.Exam, pool, settings)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Starting quiz: %s (%d questions)\n", c.Exam, session.Len())
	if c.TimeLimit > 0 {
		fmt.Fprintf(deps.Stdout, "Time limit: %d seconds\n", c.TimeLimit)
	}
	fmt.Fprintln(deps.Stdout, "Answer with a letter, 's' to skip, 'q' to quit.")

	c.runLoop(deps, session)

	record := session.Finish()
	printResult(deps, record)

	if err := deps.Sessions.CreateSession(deps.Ctx, record); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: could not save session: %s\n", certquiz.ErrorMessage(err))
	}
	return nil
}

// runLoop asks questions until the session finishes, the time limit
// passes, input ends, or the user quits.
func (c *QuizCmd) runLoop(deps *Dependencies, session *quiz.Session) {
	scanner := bufio.NewScanner(deps.Stdin)
	number := 0

	for {
		q := session.Current()
		if q == nil {
			return
		}
		if session.Expired() {
			fmt.Fprintln(deps.Stdout, "\nTime limit reached.")
			return
		}

		number++
		printQuestion(deps, q, number, session.Len())

		answered := false
		for !answered {
			fmt.Fprint(deps.Stdout, "> ")
			if !scanner.Scan() {
				return
			}
			input := strings.ToUpper(strings.TrimSpace(scanner.Text()))

			switch input {
			case "":
				continue
			case "Q":
				return
			case "S":
				if err := session.Skip(); err != nil {
					return
				}
				answered = true
			default:
				correct, err := session.Submit(input)
				if err != nil {
					if certquiz.ErrorCode(err) == certquiz.EINVALID {
						fmt.Fprintf(deps.Stdout, "No choice %q. Try again.\n", input)
						continue
					}
					fmt.Fprintln(deps.Stdout, "\nTime limit reached.")
					return
				}
				printFeedback(deps, q, correct, c.ShowVotes)
				answered = true
			}
		}
	}
}

func printQuestion(deps *Dependencies, q *certquiz.Question, number, total int) {
	fmt.Fprintf(deps.Stdout, "\nQuestion %d of %d", number, total)
	if q.Topic != "" && q.Topic != "General" {
		fmt.Fprintf(deps.Stdout, " (%s)", q.Topic)
	}
	fmt.Fprintf(deps.Stdout, "\n%s\n", q.Text)
	for _, choice := range q.Choices {
		fmt.Fprintf(deps.Stdout, "  %s) %s\n", choice.Letter, choice.Text)
	}
}

func printFeedback(deps *Dependencies, q *certquiz.Question, correct bool, showVotes bool) {
	if correct {
		fmt.Fprintln(deps.Stdout, "Correct!")
	} else {
		fmt.Fprintf(deps.Stdout, "Incorrect. The correct answer is %s.\n", q.CorrectAnswer)
	}
	if q.Explanation != "" {
		fmt.Fprintf(deps.Stdout, "Explanation: %s\n", q.Explanation)
	}
	if showVotes && q.VotingData.TotalVotes > 0 {
		fmt.Fprintf(deps.Stdout, "Community votes (%d total): %s\n",
			q.VotingData.TotalVotes, formatVotes(q.VotingData.VoteDistribution))
	}
}

func formatVotes(distribution map[string]int) string {
	letters := make([]string, 0, len(distribution))
	for letter := range distribution {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	parts := make([]string, 0, len(letters))
	for _, letter := range letters {
		parts = append(parts, fmt.Sprintf("%s=%d", letter, distribution[letter]))
	}
	return strings.Join(parts, " ")
}

func printResult(deps *Dependencies, record *certquiz.QuizSession) {
	result := record.Result
	fmt.Fprintf(deps.Stdout, "\nScore: %d/%d (%.1f%%)\n",
		result.CorrectAnswers, result.TotalQuestions, result.ScorePercentage)
	fmt.Fprintf(deps.Stdout, "Total time: %.0fs (avg %.1fs per question)\n",
		result.TotalTime, result.AverageTimePerQuestion)

	breakdown := quiz.TopicBreakdown(record)
	if len(breakdown) > 1 {
		fmt.Fprintln(deps.Stdout, "\nBy topic:")
		for _, topic := range breakdown {
			fmt.Fprintf(deps.Stdout, "  %-30s %d/%d (%.1f%%)\n",
				topic.Topic, topic.Correct, topic.Total, topic.Percentage)
		}
	}

	times := quiz.Times(record)
	if times.Slowest > 0 {
		fmt.Fprintf(deps.Stdout, "\nFastest %.1fs, slowest %.1fs, median %.1fs\n",
			times.Fastest, times.Slowest, times.Median)
	}
}

func (c *QuizCmd) showHistory(deps *Dependencies) error {
	sessions, err := deps.Sessions.FindSessions(deps.Ctx, c.Exam, c.History)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintf(deps.Stdout, "No sessions recorded for %q\n", c.Exam)
		return nil
	}

	for _, s := range sessions {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d/%d (%.1f%%)\n",
			s.EndTime.Format("2006-01-02 15:04"), s.SessionID,
			s.Result.CorrectAnswers, s.Result.TotalQuestions, s.Result.ScorePercentage)
	}
	return nil
}
