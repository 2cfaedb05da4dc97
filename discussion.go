package certquiz

import "time"

// Comment is a single discussion comment, possibly with nested replies.
type Comment struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	Content       string    `json:"content"`
	Upvotes       int       `json:"upvotes"`
	IsHighlyVoted bool      `json:"is_highly_voted"`
	Timestamp     string    `json:"timestamp"`
	Replies       []Comment `json:"replies"`
}

// Discussion is the community discussion thread attached to a question.
type Discussion struct {
	QuestionID          string    `json:"question_id"`
	TotalComments       int       `json:"total_comments"`
	Comments            []Comment `json:"comments"`
	ExtractionTimestamp time.Time `json:"extraction_timestamp"`
}

// Validate returns an error if the discussion contains invalid fields.
func (d *Discussion) Validate() error {
	if d.QuestionID == "" {
		return Errorf(EINVALID, "discussion question ID required")
	}
	return nil
}
