package main

import (
	"fmt"

	"certquiz"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	names, err := deps.Exams.ListExams(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "No exams found. Use 'certquiz extract' to create one.")
		return nil
	}

	for _, name := range names {
		stats, err := deps.Exams.Stats(deps.Ctx, name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
			return err
		}

		line := fmt.Sprintf("%s  %d questions  %d discussions", name, stats.Questions, stats.Discussions)
		if info, err := deps.Exams.LoadExamInfo(deps.Ctx, name); err == nil {
			if info.Vendor != "" {
				line += "  " + info.Vendor
			}
			if info.Code != "" {
				line += "  " + info.Code
			}
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
