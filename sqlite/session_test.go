package sqlite_test

import (
	"context"
	"testing"
	"time"

	"certquiz"
	"certquiz/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func finishedSession(examName string) *certquiz.QuizSession {
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return &certquiz.QuizSession{
		ExamName: examName,
		Settings: certquiz.QuizSettings{QuestionCount: 2, RandomizeQuestions: true},
		Questions: []*certquiz.Question{
			{
				ID: "question_1", Number: 1, Topic: "General",
				Text:          "First question?",
				Choices:       []certquiz.Choice{{Letter: "A", Text: "yes"}, {Letter: "B", Text: "no"}},
				CorrectAnswer: "A",
			},
			{
				ID: "question_2", Number: 2, Topic: "Storage",
				Text:          "Second question?",
				Choices:       []certquiz.Choice{{Letter: "A", Text: "yes"}, {Letter: "B", Text: "no"}},
				CorrectAnswer: "B",
			},
		},
		UserAnswers: []certquiz.UserAnswer{
			{QuestionID: "question_1", SelectedChoice: "A", IsCorrect: true, TimeTaken: 4.2, Timestamp: start.Add(5 * time.Second)},
			{QuestionID: "question_2", SelectedChoice: "", IsCorrect: false, TimeTaken: 1.0, Timestamp: start.Add(7 * time.Second)},
		},
		StartTime: start,
		EndTime:   start.Add(10 * time.Second),
		Result: &certquiz.QuizResult{
			TotalQuestions:         2,
			CorrectAnswers:         1,
			ScorePercentage:        50,
			TotalTime:              10,
			AverageTimePerQuestion: 5,
		},
	}
}

func TestSessionService_CreateSession(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and round-trips", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSessionService(mustOpenDB(t))
		ctx := context.Background()

		session := finishedSession("aws-saa")
		require.NoError(t, svc.CreateSession(ctx, session))
		require.NotEmpty(t, session.SessionID)

		got, err := svc.FindSessionByID(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "aws-saa", got.ExamName)
		assert.Equal(t, session.Settings, got.Settings)
		require.Len(t, got.Questions, 2)
		assert.Equal(t, "question_2", got.Questions[1].ID)
		require.NotNil(t, got.Result)
		assert.Equal(t, 50.0, got.Result.ScorePercentage)
		require.Len(t, got.UserAnswers, 2)
		assert.Equal(t, "A", got.UserAnswers[0].SelectedChoice)
		assert.Equal(t, "", got.UserAnswers[1].SelectedChoice, "skipped answer round-trips as empty")
	})

	t.Run("rejects session without result", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSessionService(mustOpenDB(t))

		session := finishedSession("exam")
		session.Result = nil

		err := svc.CreateSession(context.Background(), session)
		require.Error(t, err)
		assert.Equal(t, certquiz.EINVALID, certquiz.ErrorCode(err))
	})

	t.Run("rejects session without exam name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSessionService(mustOpenDB(t))

		session := finishedSession("")
		err := svc.CreateSession(context.Background(), session)
		require.Error(t, err)
		assert.Equal(t, certquiz.EINVALID, certquiz.ErrorCode(err))
	})
}

func TestSessionService_FindSessionByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewSessionService(mustOpenDB(t))

	_, err := svc.FindSessionByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, certquiz.ENOTFOUND, certquiz.ErrorCode(err))
}

func TestSessionService_FindSessions(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewSessionService(mustOpenDB(t))
	ctx := context.Background()

	older := finishedSession("aws-saa")
	older.EndTime = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession(ctx, older))

	newer := finishedSession("aws-saa")
	newer.EndTime = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession(ctx, newer))

	other := finishedSession("azure-az104")
	require.NoError(t, svc.CreateSession(ctx, other))

	t.Run("filters by exam and orders newest first", func(t *testing.T) {
		sessions, err := svc.FindSessions(ctx, "aws-saa", 0)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, newer.SessionID, sessions[0].SessionID)
		assert.Equal(t, older.SessionID, sessions[1].SessionID)
	})

	t.Run("empty exam name matches all", func(t *testing.T) {
		sessions, err := svc.FindSessions(ctx, "", 0)
		require.NoError(t, err)
		assert.Len(t, sessions, 3)
	})

	t.Run("respects limit", func(t *testing.T) {
		sessions, err := svc.FindSessions(ctx, "aws-saa", 1)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, newer.SessionID, sessions[0].SessionID)
	})
}
