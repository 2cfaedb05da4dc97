package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"certquiz"
)

// Page is one document's worth of markup handed to the pipeline, either
// a fetched exam page or a local HTML file.
type Page struct {
	Name   string // source URL or file path
	HTML   string
	Number int
}

// Result holds the outcome of an extraction run.
type Result struct {
	Cards       int
	Saved       int
	Discussions int
	Failed      int
	Fallbacks   int
	Errors      []CardError
	Success     bool
}

// CardError records a per-card failure with its provenance. Card
// failures never abort the batch.
type CardError struct {
	Source string
	Page   int
	Number int // 0 when the card carried no recognizable number
	Err    error
}

func (e CardError) Error() string {
	if e.Number > 0 {
		return fmt.Sprintf("%s page %d question %d: %v", e.Source, e.Page, e.Number, e.Err)
	}
	return fmt.Sprintf("%s page %d: %v", e.Source, e.Page, e.Err)
}

// ProgressEvent reports progress during an extraction run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Question  int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFallback
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting extraction progress.
type ProgressFunc func(event ProgressEvent)

// Pipeline orchestrates extraction of exam questions from page markup.
//
// Per card it attempts structured extraction first when a structured
// extractor is configured, falling back to the traditional extractor on
// any failure. Cards are processed sequentially; the expensive
// structured path is rate limited internally and ordering of the stored
// questions must follow document order.
type Pipeline struct {
	Locator     certquiz.CardLocator
	Structured  certquiz.QuestionExtractor
	Traditional certquiz.QuestionExtractor
	Discussions certquiz.DiscussionExtractor
	Validator   *Validator
	Exams       certquiz.ExamService
	Logger      *slog.Logger

	// MaxQuestions caps the number of cards processed; zero means no cap.
	MaxQuestions int
}

// Run extracts questions from the given pages and stores them under
// examName. The progress callback, if provided, receives events as
// extraction proceeds. The returned Result is non-nil unless storage of
// the exam metadata itself fails.
func (p *Pipeline) Run(ctx context.Context, info *certquiz.ExamInfo, pages []Page, progress ProgressFunc) (*Result, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	start := time.Now().UTC()
	result := &Result{}

	cards := p.locateCards(pages, result)
	result.Cards = len(cards)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(cards)})
	}

	for i, card := range cards {
		if ctx.Err() != nil {
			break
		}

		q, usedFallback, err := p.extractCard(ctx, card)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, CardError{
				Source: card.SourceDocument,
				Page:   card.PageNumber,
				Number: cardNumber(card),
				Err:    err,
			})
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: i + 1,
					Total:     len(cards),
					Error:     err,
				})
			}
			continue
		}
		if usedFallback {
			result.Fallbacks++
		}

		if p.Validator != nil {
			q = p.Validator.ValidateAndFix(ctx, q, card)
		}
		if q.Topic == "" {
			q.Topic = "General"
		}

		if err := p.Exams.SaveQuestion(ctx, info.Name, q); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, CardError{
				Source: card.SourceDocument,
				Page:   card.PageNumber,
				Number: q.Number,
				Err:    err,
			})
			continue
		}
		result.Saved++

		if p.Discussions != nil {
			d, err := p.Discussions.ExtractDiscussion(ctx, card, q.ID)
			if err != nil {
				p.logger().Debug("discussion extraction failed",
					"question", q.ID, "error", err)
			} else if len(d.Comments) > 0 {
				if err := p.Exams.SaveDiscussion(ctx, info.Name, d); err == nil {
					result.Discussions++
				}
			}
		}

		if progress != nil {
			event := ProgressEvent{
				Type:      ProgressCompleted,
				Completed: i + 1,
				Total:     len(cards),
				Question:  q.Number,
			}
			if usedFallback {
				event.Type = ProgressFallback
			}
			progress(event)
		}
	}

	result.Success = result.Saved > 0

	info.TotalQuestions = result.Saved
	info.LastUpdated = time.Now().UTC()
	if err := p.Exams.SaveExamInfo(ctx, info); err != nil {
		return nil, err
	}

	report := &certquiz.ExtractionReport{
		ExamInfo:             *info,
		QuestionsExtracted:   result.Saved,
		DiscussionsExtracted: result.Discussions,
		StartTime:            start,
		EndTime:              time.Now().UTC(),
		Success:              result.Success,
	}
	for _, cardErr := range result.Errors {
		report.ExtractionErrors = append(report.ExtractionErrors, cardErr.Error())
	}
	if err := p.Exams.SaveReport(ctx, info.Name, report); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: len(cards),
			Total:     len(cards),
		})
	}

	return result, nil
}

// locateCards locates and dedups cards across all pages in order,
// applying the question cap. Locate failures are recorded per page.
func (p *Pipeline) locateCards(pages []Page, result *Result) []certquiz.RawCard {
	dedup := NewDeduplicator()

	var cards []certquiz.RawCard
	for _, page := range pages {
		located, err := p.Locator.Locate(page.HTML, page.Name, page.Number)
		if err != nil {
			result.Errors = append(result.Errors, CardError{
				Source: page.Name,
				Page:   page.Number,
				Err:    err,
			})
			continue
		}
		for _, card := range located {
			if !dedup.Keep(card) {
				continue
			}
			if p.MaxQuestions > 0 && len(cards) >= p.MaxQuestions {
				return cards
			}
			cards = append(cards, card)
		}
	}
	return cards
}

// extractCard runs the structured extractor with traditional fallback.
func (p *Pipeline) extractCard(ctx context.Context, card certquiz.RawCard) (*certquiz.Question, bool, error) {
	if p.Structured != nil {
		q, err := p.Structured.ExtractQuestion(ctx, card)
		if err == nil {
			return q, false, nil
		}
		p.logger().Debug("structured extraction failed, falling back",
			"source", card.SourceDocument,
			"page", card.PageNumber,
			"error", err)

		if p.Traditional == nil {
			return nil, false, err
		}
		q, err = p.Traditional.ExtractQuestion(ctx, card)
		if err != nil {
			return nil, true, err
		}
		return q, true, nil
	}

	if p.Traditional == nil {
		return nil, false, certquiz.Errorf(certquiz.EINTERNAL, "no extractor configured")
	}
	q, err := p.Traditional.ExtractQuestion(ctx, card)
	return q, false, err
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func cardNumber(card certquiz.RawCard) int {
	if n, ok := certquiz.ExtractQuestionNumber(card.Text); ok {
		return n
	}
	return 0
}
