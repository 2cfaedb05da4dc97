package certquiz

import (
	"fmt"
	"time"
)

// ChoiceLetters are the choice letters a question may carry. The regex
// fallback in the traditional extractor only recognizes A-D; the selector
// and structured paths accept the full range.
const ChoiceLetters = "ABCDEFGH"

// Choice represents a single multiple-choice option.
type Choice struct {
	Letter      string `json:"letter"`
	Text        string `json:"text"`
	IsMostVoted bool   `json:"is_most_voted"`
	IsCorrect   bool   `json:"is_correct"`
}

// VotingData holds community voting statistics for a question.
type VotingData struct {
	TotalVotes       int            `json:"total_votes"`
	VoteDistribution map[string]int `json:"vote_distribution"`
	MostVotedAnswer  string         `json:"most_voted_answer"`
	ConfidenceScore  float64        `json:"confidence_score"`
}

// EmptyVotingData returns the zero placeholder used when no voting
// information could be extracted.
func EmptyVotingData() VotingData {
	return VotingData{
		TotalVotes:       0,
		VoteDistribution: map[string]int{},
		MostVotedAnswer:  "A",
		ConfidenceScore:  0.0,
	}
}

// IsZero reports whether the voting data carries no information beyond
// the placeholder defaults.
func (v VotingData) IsZero() bool {
	return v.TotalVotes == 0 && len(v.VoteDistribution) == 0
}

// Confidence derives a confidence score from a vote distribution: the
// share of votes held by the top choice, clamped to [0, 1]. Returns 0
// when the distribution is empty or the total is zero.
func Confidence(distribution map[string]int) float64 {
	total := 0
	top := 0
	for _, n := range distribution {
		if n < 0 {
			continue
		}
		total += n
		if n > top {
			top = n
		}
	}
	if total == 0 {
		return 0.0
	}
	score := float64(top) / float64(total)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// QuestionMetadata records provenance for an extracted question.
type QuestionMetadata struct {
	ExtractionTimestamp time.Time `json:"extraction_timestamp"`
	SourceURL           string    `json:"source_url"`
	PageNumber          int       `json:"page_number"`
	DifficultyLevel     string    `json:"difficulty_level"`
}

// Question is the central extracted record. A Question is constructed
// once per unique number during an extraction run, normalized by the
// validator, then persisted; the core never mutates it afterward. Quiz
// sessions shuffle copies for display, never the stored record.
type Question struct {
	ID            string           `json:"id"`
	Number        int              `json:"number"`
	Topic         string           `json:"topic"`
	Text          string           `json:"text"`
	Choices       []Choice         `json:"choices"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation"`
	VotingData    VotingData       `json:"voting_data"`
	Metadata      QuestionMetadata `json:"metadata"`
}

// QuestionID returns the canonical identifier for a question number.
func QuestionID(number int) string {
	return fmt.Sprintf("question_%d", number)
}

// QuestionFilename returns the canonical storage filename for a
// question number, zero-padded to three digits.
func QuestionFilename(number int) string {
	return fmt.Sprintf("question_%03d.json", number)
}

// Validate returns an error if the question contains invalid fields.
// It checks the structural invariants that extraction must uphold;
// softer anomalies (too few choices, unmatched correct answer) are the
// validator's concern and are logged rather than rejected.
func (q *Question) Validate() error {
	if q.Number <= 0 {
		return Errorf(EINVALID, "question number must be positive")
	}
	if q.Text == "" {
		return Errorf(EINVALID, "question text required")
	}
	if len(q.Choices) == 0 {
		return Errorf(EINVALID, "question requires at least one choice")
	}
	seen := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		if seen[c.Letter] {
			return Errorf(EINVALID, "duplicate choice letter %q", c.Letter)
		}
		seen[c.Letter] = true
	}
	return nil
}

// Choice returns the choice with the given letter, or nil.
func (q *Question) Choice(letter string) *Choice {
	for i := range q.Choices {
		if q.Choices[i].Letter == letter {
			return &q.Choices[i]
		}
	}
	return nil
}
