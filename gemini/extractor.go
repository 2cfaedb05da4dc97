// Package gemini provides structured (LLM-backed) extraction of exam
// questions, discussions, and voting data using Google Gemini with JSON
// response schemas.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"certquiz"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for structured extraction.
const DefaultModel = "gemini-2.0-flash-001"

// DefaultRequestsPerMinute is the structured-extraction call budget.
const DefaultRequestsPerMinute = 60

// DefaultRetryDelays returns the backoff delays between retries of a
// failed extraction call: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Extractor implements the extraction interfaces at compile time.
var (
	_ certquiz.QuestionExtractor   = (*Extractor)(nil)
	_ certquiz.DiscussionExtractor = (*Extractor)(nil)
	_ certquiz.VotingExtractor     = (*Extractor)(nil)
)

// Extractor delegates raw card markup to Gemini configured to return
// values conforming to the certquiz record schemas. Calls are spaced by
// a token-bucket rate limit and retried with exponential backoff; after
// exhausting retries an error is returned, never a panic.
//
// A nil client produces an Extractor whose every call short-circuits to
// EUNAVAILABLE immediately, without waiting on rate limits. This is how
// a failed client initialization (e.g. missing credentials) degrades:
// the pipeline falls back to traditional extraction for the whole run.
type Extractor struct {
	client      *genai.Client
	model       string
	limiter     *rate.Limiter
	retryDelays []time.Duration
	cache       *responseCache
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModel overrides the Gemini model.
func WithModel(model string) Option {
	return func(e *Extractor) { e.model = model }
}

// WithRequestsPerMinute sets the rate-limit budget. Values <= 0 leave
// the default in place.
func WithRequestsPerMinute(rpm int) Option {
	return func(e *Extractor) {
		if rpm > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
		}
	}
}

// WithRetryDelays overrides the backoff delays. Useful for tests that
// should not sleep for real.
func WithRetryDelays(delays []time.Duration) Option {
	return func(e *Extractor) { e.retryDelays = delays }
}

// WithCache enables in-memory response caching keyed by card content,
// so re-running extraction over overlapping page sets does not repeat
// identical calls.
func WithCache() Option {
	return func(e *Extractor) { e.cache = newResponseCache() }
}

// NewExtractor creates a new Extractor. The client may be nil, which
// yields a permanently unavailable extractor (see type docs).
func NewExtractor(client *genai.Client, opts ...Option) *Extractor {
	e := &Extractor{
		client:      client,
		model:       DefaultModel,
		limiter:     rate.NewLimiter(rate.Limit(float64(DefaultRequestsPerMinute)/60.0), 1),
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available reports whether the extractor can make calls at all.
func (e *Extractor) Available() bool {
	return e.client != nil
}

// ExtractQuestion extracts a question record from the card markup.
func (e *Extractor) ExtractQuestion(ctx context.Context, card certquiz.RawCard) (*certquiz.Question, error) {
	raw, err := e.generate(ctx, questionPrompt(card.HTML), questionSchema())
	if err != nil {
		return nil, err
	}

	var payload questionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, certquiz.Errorf(certquiz.EINTERNAL, "model returned unparseable question: %v", err)
	}

	q := payload.question()
	q.VotingData = certquiz.EmptyVotingData()
	q.Metadata = certquiz.QuestionMetadata{
		ExtractionTimestamp: time.Now().UTC(),
		SourceURL:           card.SourceDocument,
		PageNumber:          card.PageNumber,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// ExtractDiscussion extracts the discussion thread from the card markup.
func (e *Extractor) ExtractDiscussion(ctx context.Context, card certquiz.RawCard, questionID string) (*certquiz.Discussion, error) {
	raw, err := e.generate(ctx, discussionPrompt(card.HTML), discussionSchema())
	if err != nil {
		return nil, err
	}

	var d certquiz.Discussion
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, certquiz.Errorf(certquiz.EINTERNAL, "model returned unparseable discussion: %v", err)
	}
	d.QuestionID = questionID
	d.TotalComments = len(d.Comments)
	d.ExtractionTimestamp = time.Now().UTC()
	for i := range d.Comments {
		if d.Comments[i].ID == "" {
			d.Comments[i].ID = fmt.Sprintf("comment_%d", i+1)
		}
		if d.Comments[i].Author == "" {
			d.Comments[i].Author = "Anonymous"
		}
	}
	return &d, nil
}

// ExtractVoting extracts community voting statistics from the card markup.
func (e *Extractor) ExtractVoting(ctx context.Context, card certquiz.RawCard) (certquiz.VotingData, error) {
	raw, err := e.generate(ctx, votingPrompt(card.HTML), votingSchema())
	if err != nil {
		return certquiz.EmptyVotingData(), err
	}

	var v certquiz.VotingData
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return certquiz.EmptyVotingData(), certquiz.Errorf(certquiz.EINTERNAL, "model returned unparseable voting data: %v", err)
	}
	if v.VoteDistribution == nil {
		v.VoteDistribution = map[string]int{}
	}
	if v.ConfidenceScore == 0 && len(v.VoteDistribution) > 0 {
		v.ConfidenceScore = certquiz.Confidence(v.VoteDistribution)
	}
	return v, nil
}

// generate runs a rate-limited, retried structured-output call and
// returns the raw JSON text. Service-specific errors never escape; they
// are translated into certquiz error codes at this boundary.
func (e *Extractor) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if e.client == nil {
		return "", certquiz.Errorf(certquiz.EUNAVAILABLE, "structured extraction service not available")
	}

	if e.cache != nil {
		if raw, ok := e.cache.get(prompt); ok {
			return raw, nil
		}
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	maxAttempts := len(e.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", err
		}

		result, err := e.client.Models.GenerateContent(ctx, e.model,
			[]*genai.Content{{
				Parts: []*genai.Part{{Text: prompt}},
			}},
			config,
		)
		if err == nil && result != nil && result.Text() != "" {
			raw := result.Text()
			if e.cache != nil {
				e.cache.put(prompt, raw)
			}
			return raw, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = certquiz.Errorf(certquiz.EINTERNAL, "model returned empty result")
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(e.retryDelays[attempt]):
		}
	}

	return "", certquiz.Errorf(certquiz.EINTERNAL, "structured extraction failed after %d attempts: %v", maxAttempts, lastErr)
}
