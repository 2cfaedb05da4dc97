package goquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"certquiz"

	"github.com/PuerkitoBio/goquery"
)

// maxCommentLength caps the content of traditionally-parsed comments,
// which come from flattened element text and can swallow whole widgets.
const maxCommentLength = 500

// ExtractDiscussion derives a discussion thread from comment-classed
// elements on the card. Authorship and upvotes are not recoverable on
// this path; comments come back anonymous with zero votes.
func (e *Extractor) ExtractDiscussion(_ context.Context, card certquiz.RawCard, questionID string) (*certquiz.Discussion, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(card.HTML))
	if err != nil {
		return nil, certquiz.Errorf(certquiz.EINVALID, "failed to parse card HTML: %v", err)
	}

	now := time.Now().UTC()
	var comments []certquiz.Comment
	doc.Find(`div[class*="comment"], article[class*="comment"]`).Each(func(i int, s *goquery.Selection) {
		content := strings.TrimSpace(s.Text())
		if content == "" {
			return
		}
		if len(content) > maxCommentLength {
			content = content[:maxCommentLength]
		}
		comments = append(comments, certquiz.Comment{
			ID:        fmt.Sprintf("comment_%d", i+1),
			Author:    "Anonymous",
			Content:   content,
			Timestamp: now.Format(time.RFC3339),
			Replies:   []certquiz.Comment{},
		})
	})

	return &certquiz.Discussion{
		QuestionID:          questionID,
		TotalComments:       len(comments),
		Comments:            comments,
		ExtractionTimestamp: now,
	}, nil
}
