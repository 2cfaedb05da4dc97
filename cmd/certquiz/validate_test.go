package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certquiz"
	main "certquiz/cmd/certquiz"
	"certquiz/mock"
)

func validQuestion(number int) *certquiz.Question {
	return &certquiz.Question{
		ID:     certquiz.QuestionID(number),
		Number: number,
		Text:   "What is X?",
		Choices: []certquiz.Choice{
			{Letter: "A", Text: "Foo"},
			{Letter: "B", Text: "Bar"},
		},
		CorrectAnswer: "A",
	}
}

func TestValidateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports clean exam", func(t *testing.T) {
		t.Parallel()

		exams := &mock.ExamService{
			LoadQuestionsFn: func(_ context.Context, _ string) ([]*certquiz.Question, error) {
				return []*certquiz.Question{validQuestion(1), validQuestion(2)}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Exams:  exams,
		}

		cmd := &main.ValidateCmd{Exam: "aws-saa-c03"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "no problems found")
	})

	t.Run("finds structural problems", func(t *testing.T) {
		t.Parallel()

		noText := validQuestion(2)
		noText.Text = ""

		badAnswer := validQuestion(3)
		badAnswer.CorrectAnswer = "Z"

		exams := &mock.ExamService{
			LoadQuestionsFn: func(_ context.Context, _ string) ([]*certquiz.Question, error) {
				return []*certquiz.Question{
					validQuestion(1),
					validQuestion(1), // duplicate number
					noText,
					badAnswer,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Exams:  exams,
		}

		cmd := &main.ValidateCmd{Exam: "aws-saa-c03"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, certquiz.EINVALID, certquiz.ErrorCode(err))

		output := stdout.String()
		assert.Contains(t, output, "duplicate question number")
		assert.Contains(t, output, "question text required")
		assert.Contains(t, output, `correct answer "Z" is not among the choices`)
		assert.Contains(t, output, "3 problem(s) found")
	})

	t.Run("propagates missing exam", func(t *testing.T) {
		t.Parallel()

		exams := &mock.ExamService{
			LoadQuestionsFn: func(_ context.Context, examName string) ([]*certquiz.Question, error) {
				return nil, certquiz.Errorf(certquiz.ENOTFOUND, "exam %q not found", examName)
			},
		}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Exams:  exams,
		}

		cmd := &main.ValidateCmd{Exam: "nope"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, certquiz.ENOTFOUND, certquiz.ErrorCode(err))
	})
}
