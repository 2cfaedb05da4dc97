package certquiz

import (
	"context"
	"time"
)

// QuizSettings configures a quiz session.
type QuizSettings struct {
	QuestionCount         int    `json:"question_count"`
	TimeLimit             int    `json:"time_limit"` // seconds; 0 means no limit
	RandomizeQuestions    bool   `json:"randomize_questions"`
	RandomizeChoices      bool   `json:"randomize_choices"`
	ShowExplanations      bool   `json:"show_explanations"`
	ShowImmediateFeedback bool   `json:"show_immediate_feedback"`
	ShowCommunityVotes    bool   `json:"show_community_votes"`
	Topic                 string `json:"topic,omitempty"` // filter; empty means all topics
}

// UserAnswer records one answered (or skipped) question.
// An empty SelectedChoice indicates the question was skipped.
type UserAnswer struct {
	QuestionID     string    `json:"question_id"`
	SelectedChoice string    `json:"selected_choice"`
	IsCorrect      bool      `json:"is_correct"`
	TimeTaken      float64   `json:"time_taken"` // seconds
	Timestamp      time.Time `json:"timestamp"`
}

// QuizResult summarizes a completed quiz.
type QuizResult struct {
	TotalQuestions         int     `json:"total_questions"`
	CorrectAnswers         int     `json:"correct_answers"`
	ScorePercentage        float64 `json:"score_percentage"`
	TotalTime              float64 `json:"total_time"`
	AverageTimePerQuestion float64 `json:"average_time_per_question"`
}

// QuizSession is a complete quiz run over a fixed question list.
type QuizSession struct {
	SessionID   string       `json:"session_id"`
	ExamName    string       `json:"exam_name"`
	Settings    QuizSettings `json:"settings"`
	Questions   []*Question  `json:"questions"`
	UserAnswers []UserAnswer `json:"user_answers"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	Result      *QuizResult  `json:"result,omitempty"`
}

// Validate returns an error if the session contains invalid fields.
func (s *QuizSession) Validate() error {
	if s.ExamName == "" {
		return Errorf(EINVALID, "session exam name required")
	}
	if len(s.Questions) == 0 {
		return Errorf(EINVALID, "session requires at least one question")
	}
	return nil
}

// SessionService persists completed quiz sessions for the history view.
type SessionService interface {
	// CreateSession stores a finished session. The session must carry
	// a result; in-progress sessions are never persisted.
	CreateSession(ctx context.Context, session *QuizSession) error

	// FindSessionByID retrieves a session by ID.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*QuizSession, error)

	// FindSessions retrieves stored sessions for an exam, most recent
	// first. An empty exam name matches all exams.
	FindSessions(ctx context.Context, examName string, limit int) ([]*QuizSession, error)
}
