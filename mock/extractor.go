package mock

import (
	"context"

	"certquiz"
)

var _ certquiz.CardLocator = (*CardLocator)(nil)

// CardLocator is a mock implementation of certquiz.CardLocator.
type CardLocator struct {
	LocateFn func(html, sourceDocument string, pageNumber int) ([]certquiz.RawCard, error)
}

func (l *CardLocator) Locate(html, sourceDocument string, pageNumber int) ([]certquiz.RawCard, error) {
	return l.LocateFn(html, sourceDocument, pageNumber)
}

var _ certquiz.QuestionExtractor = (*QuestionExtractor)(nil)

// QuestionExtractor is a mock implementation of certquiz.QuestionExtractor.
type QuestionExtractor struct {
	ExtractQuestionFn func(ctx context.Context, card certquiz.RawCard) (*certquiz.Question, error)
}

func (e *QuestionExtractor) ExtractQuestion(ctx context.Context, card certquiz.RawCard) (*certquiz.Question, error) {
	return e.ExtractQuestionFn(ctx, card)
}

var _ certquiz.DiscussionExtractor = (*DiscussionExtractor)(nil)

// DiscussionExtractor is a mock implementation of certquiz.DiscussionExtractor.
type DiscussionExtractor struct {
	ExtractDiscussionFn func(ctx context.Context, card certquiz.RawCard, questionID string) (*certquiz.Discussion, error)
}

func (e *DiscussionExtractor) ExtractDiscussion(ctx context.Context, card certquiz.RawCard, questionID string) (*certquiz.Discussion, error) {
	return e.ExtractDiscussionFn(ctx, card, questionID)
}

var _ certquiz.VotingExtractor = (*VotingExtractor)(nil)

// VotingExtractor is a mock implementation of certquiz.VotingExtractor.
type VotingExtractor struct {
	ExtractVotingFn func(ctx context.Context, card certquiz.RawCard) (certquiz.VotingData, error)
}

func (e *VotingExtractor) ExtractVoting(ctx context.Context, card certquiz.RawCard) (certquiz.VotingData, error) {
	return e.ExtractVotingFn(ctx, card)
}
