package extract_test

import (
	"context"
	"testing"

	"certquiz"
	"certquiz/extract"
	"certquiz/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedQuestion() *certquiz.Question {
	return &certquiz.Question{
		ID:     "question_12",
		Number: 12,
		Text:   "What is the capital of France?",
		Choices: []certquiz.Choice{
			{Letter: "A", Text: "London"},
			{Letter: "B", Text: "Paris"},
			{Letter: "C", Text: "Berlin"},
		},
		CorrectAnswer: "B",
		VotingData:    certquiz.EmptyVotingData(),
	}
}

func TestValidator_ReconcilesCorrectFlags(t *testing.T) {
	t.Parallel()

	v := &extract.Validator{}

	q := wellFormedQuestion()
	q.Choices[0].IsCorrect = true // stale flag contradicting CorrectAnswer

	got := v.ValidateAndFix(context.Background(), q, certquiz.RawCard{})

	assert.False(t, got.Choices[0].IsCorrect)
	assert.True(t, got.Choices[1].IsCorrect)
	assert.False(t, got.Choices[2].IsCorrect)
}

func TestValidator_NormalizesID(t *testing.T) {
	t.Parallel()

	v := &extract.Validator{}

	q := wellFormedQuestion()
	q.ID = "Q-12-malformed"

	got := v.ValidateAndFix(context.Background(), q, certquiz.RawCard{})
	assert.Equal(t, "question_12", got.ID)
}

func TestValidator_WellFormedQuestionUnchanged(t *testing.T) {
	t.Parallel()

	v := &extract.Validator{}

	q := wellFormedQuestion()
	q.Choices[1].IsCorrect = true

	before := *q
	got := v.ValidateAndFix(context.Background(), q, certquiz.RawCard{})

	assert.Equal(t, before.ID, got.ID)
	assert.Equal(t, before.Text, got.Text)
	assert.Equal(t, before.CorrectAnswer, got.CorrectAnswer)
	assert.True(t, got.Choices[1].IsCorrect)
}

func TestValidator_VotingSecondChance(t *testing.T) {
	t.Parallel()

	t.Run("replaces placeholder with non-trivial result", func(t *testing.T) {
		t.Parallel()

		voting := &mock.VotingExtractor{
			ExtractVotingFn: func(ctx context.Context, card certquiz.RawCard) (certquiz.VotingData, error) {
				return certquiz.VotingData{
					TotalVotes:       10,
					VoteDistribution: map[string]int{"A": 3, "B": 7},
					MostVotedAnswer:  "B",
					ConfidenceScore:  0.7,
				}, nil
			},
		}
		v := &extract.Validator{Voting: voting}

		got := v.ValidateAndFix(context.Background(), wellFormedQuestion(), certquiz.RawCard{})

		require.Equal(t, 10, got.VotingData.TotalVotes)
		assert.Equal(t, "B", got.VotingData.MostVotedAnswer)
		assert.True(t, got.Choices[1].IsMostVoted)
		assert.False(t, got.Choices[0].IsMostVoted)
	})

	t.Run("keeps placeholder when second chance is also trivial", func(t *testing.T) {
		t.Parallel()

		voting := &mock.VotingExtractor{
			ExtractVotingFn: func(ctx context.Context, card certquiz.RawCard) (certquiz.VotingData, error) {
				return certquiz.EmptyVotingData(), nil
			},
		}
		v := &extract.Validator{Voting: voting}

		got := v.ValidateAndFix(context.Background(), wellFormedQuestion(), certquiz.RawCard{})
		assert.True(t, got.VotingData.IsZero())
	})

	t.Run("skips second chance when voting data already present", func(t *testing.T) {
		t.Parallel()

		called := false
		voting := &mock.VotingExtractor{
			ExtractVotingFn: func(ctx context.Context, card certquiz.RawCard) (certquiz.VotingData, error) {
				called = true
				return certquiz.EmptyVotingData(), nil
			},
		}
		v := &extract.Validator{Voting: voting}

		q := wellFormedQuestion()
		q.VotingData = certquiz.VotingData{
			TotalVotes:       5,
			VoteDistribution: map[string]int{"A": 5},
			MostVotedAnswer:  "A",
			ConfidenceScore:  1.0,
		}

		got := v.ValidateAndFix(context.Background(), q, certquiz.RawCard{})
		assert.False(t, called)
		assert.Equal(t, 5, got.VotingData.TotalVotes)
	})
}

func TestValidator_FewChoicesPassesThrough(t *testing.T) {
	t.Parallel()

	v := &extract.Validator{}

	q := wellFormedQuestion()
	q.Choices = q.Choices[:1]
	q.CorrectAnswer = "A"

	got := v.ValidateAndFix(context.Background(), q, certquiz.RawCard{})
	require.Len(t, got.Choices, 1)
	assert.True(t, got.Choices[0].IsCorrect)
}
