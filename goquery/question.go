package goquery

import (
	"context"
	"regexp"
	"strings"
	"time"

	"certquiz"

	"github.com/PuerkitoBio/goquery"
)

// textSelectors are tried in order for the question-body container.
var textSelectors = []string{
	".question-text",
	".question-body",
	".question-content",
	"p.question",
	".card-body p",
}

// answerSelectors suggest a revealed/correct-answer marker.
var answerSelectors = []string{
	".correct-answer",
	".answer",
	`[class*="correct"]`,
	`[class*="answer"]`,
}

// topicSelectors suggest a topic/section heading.
var topicSelectors = []string{
	".topic",
	".section",
	".category",
	"h3",
	"h4",
}

// explanationSelectors suggest an explanation/rationale block.
var explanationSelectors = []string{
	".explanation",
	".answer-explanation",
	".rationale",
	`[class*="explanation"]`,
}

// choicePattern is the regex fallback for choices when no selector
// matches. It only recognizes the four-letter baseline A-D; markup
// with more choices must expose them through choice-classed elements.
var choicePattern = regexp.MustCompile(`([A-D])\.\s*([^\n]+)`)

// Ensure Extractor implements the extraction interfaces at compile time.
var (
	_ certquiz.QuestionExtractor   = (*Extractor)(nil)
	_ certquiz.VotingExtractor     = (*Extractor)(nil)
	_ certquiz.DiscussionExtractor = (*Extractor)(nil)
)

// Extractor is the traditional, deterministic extractor. It derives a
// question record from a card using CSS selectors and regex patterns,
// with no external calls. Each sub-step degrades gracefully; only a
// missing question number, text, or choice list fails the card.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractQuestion derives a question from the card.
func (e *Extractor) ExtractQuestion(_ context.Context, card certquiz.RawCard) (*certquiz.Question, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(card.HTML))
	if err != nil {
		return nil, certquiz.Errorf(certquiz.EINVALID, "failed to parse card HTML: %v", err)
	}

	flat := doc.Text()

	number, ok := certquiz.ExtractQuestionNumber(flat)
	if !ok {
		return nil, certquiz.Errorf(certquiz.EINVALID, "no question number found")
	}

	text := extractText(doc)
	if text == "" {
		return nil, certquiz.Errorf(certquiz.EINVALID, "no question text found")
	}

	choices := extractChoices(doc, flat)
	if len(choices) == 0 {
		return nil, certquiz.Errorf(certquiz.EINVALID, "no choices found")
	}

	return &certquiz.Question{
		ID:            certquiz.QuestionID(number),
		Number:        number,
		Topic:         extractTopic(doc),
		Text:          text,
		Choices:       choices,
		CorrectAnswer: extractCorrectAnswer(doc),
		Explanation:   extractExplanation(doc),
		VotingData:    certquiz.EmptyVotingData(),
		Metadata: certquiz.QuestionMetadata{
			ExtractionTimestamp: time.Now().UTC(),
			SourceURL:           card.SourceDocument,
			PageNumber:          card.PageNumber,
		},
	}, nil
}

// extractText tries the body selectors in order, then falls back to the
// longest paragraph by visible text length. Ties go to the first
// occurrence in document order.
func extractText(doc *goquery.Document) string {
	for _, selector := range textSelectors {
		if s := doc.Find(selector).First(); s.Length() > 0 {
			if text := strings.TrimSpace(s.Text()); text != "" {
				return text
			}
		}
	}

	longest := ""
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > len(longest) {
			longest = text
		}
	})
	return longest
}

// extractChoices looks for elements whose class contains "choice" and
// splits each as "<Letter>. <text>". With no such elements it falls
// back to scanning the flat card text for A-D patterns in document
// order.
func extractChoices(doc *goquery.Document, flat string) []certquiz.Choice {
	var choices []certquiz.Choice

	doc.Find(`div[class*="choice"], li[class*="choice"], p[class*="choice"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) <= 2 {
			return
		}
		letter := "A"
		if strings.ContainsAny(text[:1], certquiz.ChoiceLetters) {
			letter = text[:1]
		}
		choices = append(choices, certquiz.Choice{
			Letter: letter,
			Text:   strings.TrimSpace(text[2:]),
		})
	})
	if len(choices) > 0 {
		return choices
	}

	for _, m := range choicePattern.FindAllStringSubmatch(flat, -1) {
		choices = append(choices, certquiz.Choice{
			Letter: m[1],
			Text:   strings.TrimSpace(m[2]),
		})
	}
	return choices
}

// extractCorrectAnswer tries the reveal-marker selectors; the first
// character of the first match wins if it is one of A-D. Defaults to
// "A" when nothing is found, a deliberately permissive default.
func extractCorrectAnswer(doc *goquery.Document) string {
	for _, selector := range answerSelectors {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(s.Text())
		if text != "" && strings.Contains("ABCD", text[:1]) {
			return text[:1]
		}
	}
	return "A"
}

// extractTopic accepts the first heading-like match under 100
// characters. Returns "" when nothing plausible is found.
func extractTopic(doc *goquery.Document) string {
	for _, selector := range topicSelectors {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(s.Text())
		if text != "" && len(text) < 100 {
			return text
		}
	}
	return ""
}

func extractExplanation(doc *goquery.Document) string {
	for _, selector := range explanationSelectors {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			return text
		}
	}
	return ""
}
