package main

import (
	"fmt"

	"certquiz"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return certquiz.Errorf(certquiz.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Exams.DeleteExam(deps.Ctx, c.Exam); err != nil {
		if certquiz.ErrorCode(err) == certquiz.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: exam %q not found. Use 'certquiz list' to see stored exams.\n", c.Exam)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", certquiz.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted exam %q\n", c.Exam)
	return nil
}
