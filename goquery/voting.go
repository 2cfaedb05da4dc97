package goquery

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"certquiz"

	"github.com/PuerkitoBio/goquery"
)

// voteEntry matches the JSON the site embeds in script tags alongside
// each question card.
type voteEntry struct {
	VotedAnswers string `json:"voted_answers"`
	VoteCount    int    `json:"vote_count"`
	IsMostVoted  bool   `json:"is_most_voted"`
}

// votePattern matches textual vote counts like "A (12 votes)".
var votePattern = regexp.MustCompile(`([A-H])\D*?(\d+)`)

// ExtractVoting derives voting statistics from a card without external
// calls. It prefers the embedded JSON script; failing that it scans
// vote-classed elements for letter/count pairs. Returns the zero
// placeholder when the card carries no voting information.
func (e *Extractor) ExtractVoting(_ context.Context, card certquiz.RawCard) (certquiz.VotingData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(card.HTML))
	if err != nil {
		return certquiz.EmptyVotingData(), certquiz.Errorf(certquiz.EINVALID, "failed to parse card HTML: %v", err)
	}

	if v, ok := votingFromScripts(doc); ok {
		return v, nil
	}
	if v, ok := votingFromElements(doc); ok {
		return v, nil
	}
	return certquiz.EmptyVotingData(), nil
}

func votingFromScripts(doc *goquery.Document) (certquiz.VotingData, bool) {
	var entries []voteEntry
	doc.Find(`script[type="application/json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(strings.ToLower(text), "vote") {
			return true
		}
		if err := json.Unmarshal([]byte(text), &entries); err != nil {
			entries = nil
			return true
		}
		return false
	})
	if len(entries) == 0 {
		return certquiz.VotingData{}, false
	}

	distribution := make(map[string]int, len(entries))
	for _, entry := range entries {
		letter := strings.TrimSpace(entry.VotedAnswers)
		if letter == "" || entry.VoteCount < 0 {
			continue
		}
		distribution[letter] += entry.VoteCount
	}
	return buildVotingData(distribution), len(distribution) > 0
}

func votingFromElements(doc *goquery.Document) (certquiz.VotingData, bool) {
	distribution := make(map[string]int)
	doc.Find(`span[class*="vote"], div[class*="vote"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		for _, m := range votePattern.FindAllStringSubmatch(text, -1) {
			count := 0
			for _, r := range m[2] {
				count = count*10 + int(r-'0')
			}
			distribution[m[1]] += count
		}
	})
	if len(distribution) == 0 {
		return certquiz.VotingData{}, false
	}
	return buildVotingData(distribution), true
}

func buildVotingData(distribution map[string]int) certquiz.VotingData {
	total := 0
	top := 0
	mostVoted := "A"
	for letter, n := range distribution {
		total += n
		// Stable winner for equal counts: lexicographically first letter.
		if n > top || (n == top && letter < mostVoted) {
			top = n
			mostVoted = letter
		}
	}
	return certquiz.VotingData{
		TotalVotes:       total,
		VoteDistribution: distribution,
		MostVotedAnswer:  mostVoted,
		ConfidenceScore:  certquiz.Confidence(distribution),
	}
}
