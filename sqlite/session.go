package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"certquiz"

	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ certquiz.SessionService = (*SessionService)(nil)

// SessionService implements certquiz.SessionService using SQLite.
// Only finished sessions are stored; the quiz engine keeps in-progress
// state in memory.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession stores a finished quiz session with its answers.
func (s *SessionService) CreateSession(ctx context.Context, session *certquiz.QuizSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.Result == nil {
		return certquiz.Errorf(certquiz.EINVALID, "session requires a result; in-progress sessions are not persisted")
	}

	if session.SessionID == "" {
		session.SessionID = uuid.New().String()
	}

	settings, err := json.Marshal(session.Settings)
	if err != nil {
		return err
	}
	questions, err := json.Marshal(session.Questions)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, exam_name, settings, questions, start_time, end_time,
			total_questions, correct_answers, score_percentage, total_time, average_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, session.SessionID, session.ExamName, string(settings), string(questions),
		session.StartTime.UTC().Format(time.RFC3339), session.EndTime.UTC().Format(time.RFC3339),
		session.Result.TotalQuestions, session.Result.CorrectAnswers,
		session.Result.ScorePercentage, session.Result.TotalTime,
		session.Result.AverageTimePerQuestion)
	if err != nil {
		return err
	}

	for i, answer := range session.UserAnswers {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO answers (session_id, position, question_id, selected_choice, is_correct, time_taken, answered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, session.SessionID, i, answer.QuestionID, answer.SelectedChoice,
			answer.IsCorrect, answer.TimeTaken, answer.Timestamp.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return nil
}

// FindSessionByID retrieves a session by ID.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*certquiz.QuizSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, exam_name, settings, questions, start_time, end_time,
			total_questions, correct_answers, score_percentage, total_time, average_time
		FROM sessions
		WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, certquiz.Errorf(certquiz.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadAnswers(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// FindSessions retrieves stored sessions, most recent first.
func (s *SessionService) FindSessions(ctx context.Context, examName string, limit int) ([]*certquiz.QuizSession, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, exam_name, settings, questions, start_time, end_time,
			total_questions, correct_answers, score_percentage, total_time, average_time
		FROM sessions`)
	if examName != "" {
		query.WriteString(" WHERE exam_name = ?")
		args = append(args, examName)
	}
	query.WriteString(" ORDER BY end_time DESC")
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*certquiz.QuizSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if err := s.loadAnswers(ctx, session); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (s *SessionService) loadAnswers(ctx context.Context, session *certquiz.QuizSession) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, selected_choice, is_correct, time_taken, answered_at
		FROM answers
		WHERE session_id = ?
		ORDER BY position
	`, session.SessionID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var answer certquiz.UserAnswer
		var answeredAt string
		if err := rows.Scan(&answer.QuestionID, &answer.SelectedChoice, &answer.IsCorrect, &answer.TimeTaken, &answeredAt); err != nil {
			return err
		}
		answer.Timestamp, err = parseRFC3339(answeredAt, "answered_at")
		if err != nil {
			return err
		}
		session.UserAnswers = append(session.UserAnswers, answer)
	}
	return rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanSession.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*certquiz.QuizSession, error) {
	var session certquiz.QuizSession
	var result certquiz.QuizResult
	var settings, questions, startTime, endTime string

	err := row.Scan(&session.SessionID, &session.ExamName, &settings, &questions,
		&startTime, &endTime, &result.TotalQuestions, &result.CorrectAnswers,
		&result.ScorePercentage, &result.TotalTime, &result.AverageTimePerQuestion)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(settings), &session.Settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &session.Questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if session.StartTime, err = parseRFC3339(startTime, "start_time"); err != nil {
		return nil, err
	}
	if session.EndTime, err = parseRFC3339(endTime, "end_time"); err != nil {
		return nil, err
	}

	session.Result = &result
	return &session, nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
