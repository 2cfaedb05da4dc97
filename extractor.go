package certquiz

import "context"

// QuestionExtractor derives a structured Question from a raw card.
// The structured (LLM-backed) and traditional (selector/pattern-based)
// extractors both implement this interface so the pipeline can swap
// them freely.
type QuestionExtractor interface {
	// ExtractQuestion returns the extracted question, or an error.
	// Returns EUNAVAILABLE when the extractor cannot run at all (e.g.
	// the backing service failed to initialize); the pipeline treats
	// that as an immediate fallback trigger.
	ExtractQuestion(ctx context.Context, card RawCard) (*Question, error)
}

// DiscussionExtractor derives a discussion thread from a raw card.
type DiscussionExtractor interface {
	ExtractDiscussion(ctx context.Context, card RawCard, questionID string) (*Discussion, error)
}

// VotingExtractor derives community voting statistics from a raw card.
// Used by the validator as a second-chance enrichment when the primary
// extraction produced no votes.
type VotingExtractor interface {
	ExtractVoting(ctx context.Context, card RawCard) (VotingData, error)
}
