// Package goquery provides CSS-selector based implementations of the
// certquiz card locator and the traditional (deterministic) extractors.
package goquery

import (
	"strings"

	"certquiz"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// cardSelectors are tried in order, most specific first. The first
// selector that matches at least one fragment wins; matches from
// different selectors are never combined.
var cardSelectors = []string{
	"div.exam-question-card",
	"div.card.exam-question-card",
	"div.question-card",
	"div.card.question",
	"div.exam-question",
	"article.question",
	"div.question-container",
	"div.question-wrapper",
}

// numberingTokens are the literal markers used by the last-resort
// textual fallback.
var numberingTokens = []string{
	"Question 1", "Question 2", "Question 3",
	"Q1.", "Q2.", "Q3.",
	"1.", "2.", "3.",
}

// Ensure CardLocator implements certquiz.CardLocator at compile time.
var _ certquiz.CardLocator = (*CardLocator)(nil)

// CardLocator finds question-card fragments on a document using an
// ordered list of structural selectors with textual fallbacks.
type CardLocator struct{}

// NewCardLocator creates a new CardLocator.
func NewCardLocator() *CardLocator {
	return &CardLocator{}
}

// Locate returns the question cards found on the document. An empty
// result is a valid zero-question state, not an error; only
// unparseable input is an error.
func (l *CardLocator) Locate(rawHTML, sourceDocument string, pageNumber int) ([]certquiz.RawCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, certquiz.Errorf(certquiz.EINVALID, "failed to parse HTML: %v", err)
	}

	var sels []*goquery.Selection
	for _, selector := range cardSelectors {
		matched := doc.Find(selector)
		if matched.Length() == 0 {
			continue
		}
		matched.Each(func(_ int, s *goquery.Selection) {
			sels = append(sels, s)
		})
		break
	}

	if len(sels) == 0 {
		sels = l.locateByQuestionMarker(doc)
	}
	if len(sels) == 0 {
		sels = l.locateByNumberingTokens(doc)
	}

	cards := make([]certquiz.RawCard, 0, len(sels))
	for _, s := range sels {
		outer, err := goquery.OuterHtml(s)
		if err != nil {
			continue
		}
		cards = append(cards, certquiz.RawCard{
			HTML:           outer,
			Text:           s.Text(),
			SourceDocument: sourceDocument,
			PageNumber:     pageNumber,
		})
	}
	return cards, nil
}

// locateByQuestionMarker scans all divs for text beginning with a
// "Question #" marker followed closely by a topic or question-number
// token. Deliberately conservative to avoid false positives on
// ordinary prose.
func (l *CardLocator) locateByQuestionMarker(doc *goquery.Document) []*goquery.Selection {
	var sels []*goquery.Selection
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "Question #") {
			return
		}
		head := text
		if len(head) > 20 {
			head = head[:20]
		}
		if strings.Contains(text, "Topic") || strings.Contains(head, "Question #") {
			sels = append(sels, s)
		}
	})
	return sels
}

// locateByNumberingTokens scans for elements whose direct text contains
// a literal numbering token and collects the nearest container ancestor
// of each, once per ancestor node.
func (l *CardLocator) locateByNumberingTokens(doc *goquery.Document) []*goquery.Selection {
	seen := make(map[*html.Node]bool)
	var sels []*goquery.Selection

	doc.Find("div, section, article").Each(func(_ int, s *goquery.Selection) {
		if !hasDirectNumberingText(s) {
			return
		}
		parent := s.ParentsFiltered("div, section, article").First()
		if parent.Length() == 0 {
			parent = s
		}
		node := parent.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true
		sels = append(sels, parent)
	})
	return sels
}

// hasDirectNumberingText checks the element's own text nodes, not its
// descendants, so that a page-wide wrapper does not match through its
// children.
func hasDirectNumberingText(s *goquery.Selection) bool {
	for _, node := range s.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				continue
			}
			text := strings.TrimSpace(c.Data)
			if text == "" {
				continue
			}
			for _, token := range numberingTokens {
				if strings.Contains(text, token) {
					return true
				}
			}
		}
	}
	return false
}
