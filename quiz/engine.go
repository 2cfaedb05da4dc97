// Package quiz provides the interactive quiz session engine: question
// selection, shuffling, answering, scoring, and per-topic breakdowns.
package quiz

import (
	"math/rand"
	"time"

	"certquiz"

	"github.com/google/uuid"
)

// Engine creates quiz sessions. The clock and random source are
// injectable so tests are deterministic.
type Engine struct {
	now func() time.Time
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSeed fixes the random source used for shuffling.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Filter narrows the question pool before a session starts.
type Filter struct {
	Topic         string
	MinVotes      int
	MinConfidence float64
}

// FilterQuestions returns the questions matching the filter, preserving
// order.
func FilterQuestions(questions []*certquiz.Question, filter Filter) []*certquiz.Question {
	var matched []*certquiz.Question
	for _, q := range questions {
		if filter.Topic != "" && q.Topic != filter.Topic {
			continue
		}
		if filter.MinVotes > 0 && q.VotingData.TotalVotes < filter.MinVotes {
			continue
		}
		if filter.MinConfidence > 0 && q.VotingData.ConfidenceScore < filter.MinConfidence {
			continue
		}
		matched = append(matched, q)
	}
	return matched
}

// Session is an in-progress quiz over a fixed question list. The
// session owns deep copies of the questions; shuffling never mutates
// the stored records. Not safe for concurrent use.
type Session struct {
	id        string
	examName  string
	settings  certquiz.QuizSettings
	questions []*certquiz.Question
	answers   []certquiz.UserAnswer

	now           func() time.Time
	start         time.Time
	questionStart time.Time
	index         int
}

// NewSession creates a quiz session from the question pool. The pool is
// filtered by the settings' topic, optionally shuffled, and truncated
// to the configured question count (0 means all).
func (e *Engine) NewSession(examName string, pool []*certquiz.Question, settings certquiz.QuizSettings) (*Session, error) {
	if examName == "" {
		return nil, certquiz.Errorf(certquiz.EINVALID, "exam name required")
	}

	selected := FilterQuestions(pool, Filter{Topic: settings.Topic})
	if len(selected) == 0 {
		return nil, certquiz.Errorf(certquiz.ENOTFOUND, "no questions match the quiz settings")
	}

	questions := make([]*certquiz.Question, len(selected))
	for i, q := range selected {
		questions[i] = copyQuestion(q)
	}

	if settings.RandomizeQuestions {
		e.rng.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}
	if settings.QuestionCount > 0 && settings.QuestionCount < len(questions) {
		questions = questions[:settings.QuestionCount]
	}
	if settings.RandomizeChoices {
		for _, q := range questions {
			e.rng.Shuffle(len(q.Choices), func(i, j int) {
				q.Choices[i], q.Choices[j] = q.Choices[j], q.Choices[i]
			})
		}
	}

	start := e.now()
	return &Session{
		id:            uuid.New().String(),
		examName:      examName,
		settings:      settings,
		questions:     questions,
		now:           e.now,
		start:         start,
		questionStart: start,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Answered returns the number of questions answered or skipped so far.
func (s *Session) Answered() int { return len(s.answers) }

// Finished reports whether every question has been answered or skipped.
func (s *Session) Finished() bool { return s.index >= len(s.questions) }

// Expired reports whether the session's time limit has passed.
// Sessions without a time limit never expire.
func (s *Session) Expired() bool {
	if s.settings.TimeLimit <= 0 {
		return false
	}
	return s.now().After(s.start.Add(time.Duration(s.settings.TimeLimit) * time.Second))
}

// Current returns the question awaiting an answer, or nil when the
// session is finished.
func (s *Session) Current() *certquiz.Question {
	if s.Finished() {
		return nil
	}
	return s.questions[s.index]
}

// Submit records an answer for the current question and advances.
// It reports whether the answer was correct.
func (s *Session) Submit(letter string) (bool, error) {
	q := s.Current()
	if q == nil {
		return false, certquiz.Errorf(certquiz.ECONFLICT, "quiz already finished")
	}
	if s.Expired() {
		return false, certquiz.Errorf(certquiz.ECONFLICT, "quiz time limit reached")
	}
	if q.Choice(letter) == nil {
		return false, certquiz.Errorf(certquiz.EINVALID, "no choice %q for question %d", letter, q.Number)
	}

	correct := letter == q.CorrectAnswer
	s.record(certquiz.UserAnswer{
		QuestionID:     q.ID,
		SelectedChoice: letter,
		IsCorrect:      correct,
	})
	return correct, nil
}

// Skip records the current question as skipped and advances.
func (s *Session) Skip() error {
	q := s.Current()
	if q == nil {
		return certquiz.Errorf(certquiz.ECONFLICT, "quiz already finished")
	}
	s.record(certquiz.UserAnswer{QuestionID: q.ID})
	return nil
}

func (s *Session) record(answer certquiz.UserAnswer) {
	now := s.now()
	answer.TimeTaken = now.Sub(s.questionStart).Seconds()
	answer.Timestamp = now
	s.answers = append(s.answers, answer)
	s.questionStart = now
	s.index++
}

// Finish closes the session and returns the persistable record with
// its computed result. Unanswered questions count as skipped.
func (s *Session) Finish() *certquiz.QuizSession {
	for !s.Finished() {
		_ = s.Skip()
	}

	end := s.now()
	result := &certquiz.QuizResult{
		TotalQuestions: len(s.questions),
		TotalTime:      end.Sub(s.start).Seconds(),
	}
	for _, answer := range s.answers {
		if answer.IsCorrect {
			result.CorrectAnswers++
		}
	}
	if result.TotalQuestions > 0 {
		result.ScorePercentage = float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100
		result.AverageTimePerQuestion = result.TotalTime / float64(result.TotalQuestions)
	}

	return &certquiz.QuizSession{
		SessionID:   s.id,
		ExamName:    s.examName,
		Settings:    s.settings,
		Questions:   s.questions,
		UserAnswers: s.answers,
		StartTime:   s.start,
		EndTime:     end,
		Result:      result,
	}
}

// copyQuestion deep-copies a question so shuffling cannot reach the
// stored record.
func copyQuestion(q *certquiz.Question) *certquiz.Question {
	copied := *q
	copied.Choices = make([]certquiz.Choice, len(q.Choices))
	copy(copied.Choices, q.Choices)
	if q.VotingData.VoteDistribution != nil {
		copied.VotingData.VoteDistribution = make(map[string]int, len(q.VotingData.VoteDistribution))
		for k, v := range q.VotingData.VoteDistribution {
			copied.VotingData.VoteDistribution[k] = v
		}
	}
	return &copied
}
