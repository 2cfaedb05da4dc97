package gemini

import (
	"fmt"
	"strings"

	"certquiz"

	"google.golang.org/genai"
)

// questionPayload mirrors the question response schema.
type questionPayload struct {
	QuestionNumber int    `json:"question_number"`
	QuestionText   string `json:"question_text"`
	Choices        []struct {
		Letter string `json:"letter"`
		Text   string `json:"text"`
	} `json:"choices"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Topic         string `json:"topic"`
}

// question maps the payload onto the domain record.
func (p questionPayload) question() *certquiz.Question {
	q := &certquiz.Question{
		ID:            certquiz.QuestionID(p.QuestionNumber),
		Number:        p.QuestionNumber,
		Topic:         strings.TrimSpace(p.Topic),
		Text:          strings.TrimSpace(p.QuestionText),
		CorrectAnswer: strings.ToUpper(strings.TrimSpace(p.CorrectAnswer)),
		Explanation:   strings.TrimSpace(p.Explanation),
	}
	if q.CorrectAnswer == "" {
		q.CorrectAnswer = "A"
	}
	for _, c := range p.Choices {
		q.Choices = append(q.Choices, certquiz.Choice{
			Letter: strings.ToUpper(strings.TrimSpace(c.Letter)),
			Text:   strings.TrimSpace(c.Text),
		})
	}
	return q
}

// systemInstruction anchors every structured extraction call.
const systemInstruction = `You are an expert at extracting structured data from certification
exam page markup. You are given the HTML of a single question card.
Extract the requested fields exactly as they appear; do not invent
content that is not present in the markup. Answer choice letters are
single uppercase letters (A, B, C, ...). Return only JSON matching the
response schema.`

// questionPrompt builds the extraction prompt for a question card.
func questionPrompt(cardHTML string) string {
	return fmt.Sprintf(`Extract the exam question from this HTML card.

Rules:
- question_number is the number shown on the card (e.g. "Question #12" means 12).
- question_text is the full prompt text, without the number prefix or choices.
- choices is every answer option with its letter and text.
- correct_answer is the suggested answer letter if shown, otherwise "A".
- topic is the topic or section label if present, otherwise an empty string.
- explanation is the answer explanation if present, otherwise an empty string.

HTML:
%s`, cardHTML)
}

// discussionPrompt builds the extraction prompt for the discussion
// thread attached to a question card.
func discussionPrompt(cardHTML string) string {
	return fmt.Sprintf(`Extract the community discussion thread from this HTML card.

Rules:
- Each comment has an author, content, and upvote count when shown.
- Use "Anonymous" when no author name is present.
- A comment is highly voted when the markup marks it as such.
- Nested replies belong under their parent comment.

HTML:
%s`, cardHTML)
}

// votingPrompt builds the extraction prompt for community voting bars.
func votingPrompt(cardHTML string) string {
	return fmt.Sprintf(`Extract the community voting statistics from this HTML card.

Rules:
- vote_distribution maps each answer letter to its vote count.
- most_voted_answer is the letter with the most votes.
- total_votes is the sum of all votes.
- If the card shows no voting data, return zero totals and an empty distribution.

HTML:
%s`, cardHTML)
}

func questionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question_number": {Type: genai.TypeInteger},
			"question_text":   {Type: genai.TypeString},
			"choices": {
				Type:  genai.TypeArray,
				Items: choiceSchema(),
			},
			"correct_answer": {Type: genai.TypeString},
			"explanation":    {Type: genai.TypeString},
			"topic":          {Type: genai.TypeString},
		},
		Required: []string{"question_number", "question_text", "choices", "correct_answer"},
	}
}

func choiceSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"letter": {Type: genai.TypeString},
			"text":   {Type: genai.TypeString},
		},
		Required: []string{"letter", "text"},
	}
}

func discussionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"total_comments": {Type: genai.TypeInteger},
			"comments": {
				Type:  genai.TypeArray,
				Items: commentSchema(),
			},
		},
		Required: []string{"comments"},
	}
}

func commentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"author":          {Type: genai.TypeString},
			"content":         {Type: genai.TypeString},
			"upvotes":         {Type: genai.TypeInteger},
			"is_highly_voted": {Type: genai.TypeBoolean},
		},
		Required: []string{"author", "content"},
	}
}

func votingSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"total_votes": {Type: genai.TypeInteger},
			"vote_distribution": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"A": {Type: genai.TypeInteger},
					"B": {Type: genai.TypeInteger},
					"C": {Type: genai.TypeInteger},
					"D": {Type: genai.TypeInteger},
					"E": {Type: genai.TypeInteger},
					"F": {Type: genai.TypeInteger},
				},
			},
			"most_voted_answer": {Type: genai.TypeString},
			"confidence_score":  {Type: genai.TypeNumber},
		},
		Required: []string{"total_votes", "vote_distribution"},
	}
}
