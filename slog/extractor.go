package slog

import (
	"context"
	"log/slog"
	"time"

	"certquiz"
)

// Ensure LoggingExtractor implements certquiz.QuestionExtractor.
var _ certquiz.QuestionExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a QuestionExtractor with per-card logging.
type LoggingExtractor struct {
	next   certquiz.QuestionExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next certquiz.QuestionExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractQuestion delegates to the wrapped extractor, logging the
// outcome and duration.
func (e *LoggingExtractor) ExtractQuestion(ctx context.Context, card certquiz.RawCard) (*certquiz.Question, error) {
	begin := time.Now()
	q, err := e.next.ExtractQuestion(ctx, card)
	if err != nil {
		e.logger.Error("extract question",
			"source", card.SourceDocument,
			"page", card.PageNumber,
			"duration", time.Since(begin),
			"err", err)
		return nil, err
	}

	e.logger.Info("extract question",
		"question", q.Number,
		"source", card.SourceDocument,
		"page", card.PageNumber,
		"choices", len(q.Choices),
		"duration", time.Since(begin))
	return q, nil
}
