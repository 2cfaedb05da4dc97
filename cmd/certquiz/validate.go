package main

import (
	"fmt"

	"certquiz"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	questions, err := deps.Exams.LoadQuestions(deps.Ctx, c.Exam)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}

	issues := 0
	report := func(number int, format string, args ...any) {
		issues++
		fmt.Fprintf(deps.Stdout, "question %d: %s\n", number, fmt.Sprintf(format, args...))
	}

	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if seen[q.Number] {
			report(q.Number, "duplicate question number")
		}
		seen[q.Number] = true

		if err := q.Validate(); err != nil {
			report(q.Number, "%s", certquiz.ErrorMessage(err))
			continue
		}
		if len(q.Choices) < 2 {
			report(q.Number, "only %d choice(s)", len(q.Choices))
		}
		if q.Choice(q.CorrectAnswer) == nil {
			report(q.Number, "correct answer %q is not among the choices", q.CorrectAnswer)
		}
	}

	if issues == 0 {
		fmt.Fprintf(deps.Stdout, "%d questions, no problems found\n", len(questions))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d questions, %d problem(s) found\n", len(questions), issues)
	return certquiz.Errorf(certquiz.EINVALID, "exam %q has %d validation problem(s)", c.Exam, issues)
}
