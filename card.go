package certquiz

import "regexp"

// RawCard is an HTML fragment believed to represent one exam question,
// plus provenance. Cards exist only transiently during extraction and
// are never persisted.
type RawCard struct {
	HTML           string
	Text           string // flattened visible text of the fragment
	SourceDocument string // URL or file path the card came from
	PageNumber     int
}

// CardLocator finds the question-card fragments on a parsed document.
type CardLocator interface {
	// Locate returns the cards found on the document. An empty result
	// is a valid zero-question state, not an error.
	Locate(html, sourceDocument string, pageNumber int) ([]RawCard, error)
}

// fingerprintPatterns are tried in order against a card's flattened
// text; the first capture group of the first match is the question
// number. Order matters: the bare "#N" form would otherwise shadow the
// more specific "Question #N" form.
var fingerprintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Question #(\d+)`),
	regexp.MustCompile(`Question (\d+)`),
	regexp.MustCompile(`Q(\d+)`),
	regexp.MustCompile(`#(\d+)`),
}

// ExtractQuestionNumber extracts a question-number fingerprint from a
// card's flattened text. The second return value is false when no
// pattern matches.
func ExtractQuestionNumber(text string) (int, bool) {
	for _, re := range fingerprintPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n := 0
		for _, r := range m[1] {
			n = n*10 + int(r-'0')
		}
		if n > 0 {
			return n, true
		}
	}
	return 0, false
}
