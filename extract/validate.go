package extract

import (
	"context"
	"log/slog"

	"certquiz"
)

// Validator repairs extracted questions in place. It never rejects a
// question; structural problems that cannot be repaired are logged and
// the question passes through.
type Validator struct {
	// Voting, if set, is consulted as a second chance when a question
	// carries no voting data.
	Voting certquiz.VotingExtractor

	Logger *slog.Logger
}

// ValidateAndFix normalizes the question identifier, reconciles correct
// flags with the declared answer, and enriches missing voting data from
// the card markup. The returned question is the same pointer.
func (v *Validator) ValidateAndFix(ctx context.Context, q *certquiz.Question, card certquiz.RawCard) *certquiz.Question {
	q.ID = certquiz.QuestionID(q.Number)

	if len(q.Choices) < 2 {
		v.logger().Warn("question has fewer than two choices",
			"question", q.ID,
			"choices", len(q.Choices))
	}

	// The declared answer is the single source of truth for correctness.
	for i := range q.Choices {
		q.Choices[i].IsCorrect = q.Choices[i].Letter == q.CorrectAnswer
	}

	if q.VotingData.IsZero() && v.Voting != nil {
		voting, err := v.Voting.ExtractVoting(ctx, card)
		if err == nil && !voting.IsZero() {
			q.VotingData = voting
		}
	}

	if !q.VotingData.IsZero() && q.VotingData.MostVotedAnswer != "" {
		for i := range q.Choices {
			q.Choices[i].IsMostVoted = q.Choices[i].Letter == q.VotingData.MostVotedAnswer
		}
	}

	return q
}

func (v *Validator) logger() *slog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.Default()
}
