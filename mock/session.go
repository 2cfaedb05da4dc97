package mock

import (
	"context"

	"certquiz"
)

var _ certquiz.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of certquiz.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *certquiz.QuizSession) error
	FindSessionByIDFn func(ctx context.Context, id string) (*certquiz.QuizSession, error)
	FindSessionsFn    func(ctx context.Context, examName string, limit int) ([]*certquiz.QuizSession, error)
}

func (s *SessionService) CreateSession(ctx context.Context, session *certquiz.QuizSession) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*certquiz.QuizSession, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) FindSessions(ctx context.Context, examName string, limit int) ([]*certquiz.QuizSession, error) {
	return s.FindSessionsFn(ctx, examName, limit)
}
