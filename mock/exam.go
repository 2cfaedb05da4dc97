package mock

import (
	"context"

	"certquiz"
)

var _ certquiz.ExamService = (*ExamService)(nil)

// ExamService is a mock implementation of certquiz.ExamService.
type ExamService struct {
	SaveQuestionFn   func(ctx context.Context, examName string, q *certquiz.Question) error
	SaveDiscussionFn func(ctx context.Context, examName string, d *certquiz.Discussion) error
	SaveExamInfoFn   func(ctx context.Context, info *certquiz.ExamInfo) error
	SaveReportFn     func(ctx context.Context, examName string, report *certquiz.ExtractionReport) error
	LoadQuestionFn   func(ctx context.Context, examName string, number int) (*certquiz.Question, error)
	LoadQuestionsFn  func(ctx context.Context, examName string) ([]*certquiz.Question, error)
	LoadDiscussionFn func(ctx context.Context, examName, questionID string) (*certquiz.Discussion, error)
	LoadExamInfoFn   func(ctx context.Context, examName string) (*certquiz.ExamInfo, error)
	ListExamsFn      func(ctx context.Context) ([]string, error)
	StatsFn          func(ctx context.Context, examName string) (certquiz.ExamStats, error)
	DeleteExamFn     func(ctx context.Context, examName string) error
}

func (s *ExamService) SaveQuestion(ctx context.Context, examName string, q *certquiz.Question) error {
	return s.SaveQuestionFn(ctx, examName, q)
}

func (s *ExamService) SaveDiscussion(ctx context.Context, examName string, d *certquiz.Discussion) error {
	return s.SaveDiscussionFn(ctx, examName, d)
}

func (s *ExamService) SaveExamInfo(ctx context.Context, info *certquiz.ExamInfo) error {
	return s.SaveExamInfoFn(ctx, info)
}

func (s *ExamService) SaveReport(ctx context.Context, examName string, report *certquiz.ExtractionReport) error {
	return s.SaveReportFn(ctx, examName, report)
}

func (s *ExamService) LoadQuestion(ctx context.Context, examName string, number int) (*certquiz.Question, error) {
	return s.LoadQuestionFn(ctx, examName, number)
}

func (s *ExamService) LoadQuestions(ctx context.Context, examName string) ([]*certquiz.Question, error) {
	return s.LoadQuestionsFn(ctx, examName)
}

func (s *ExamService) LoadDiscussion(ctx context.Context, examName, questionID string) (*certquiz.Discussion, error) {
	return s.LoadDiscussionFn(ctx, examName, questionID)
}

func (s *ExamService) LoadExamInfo(ctx context.Context, examName string) (*certquiz.ExamInfo, error) {
	return s.LoadExamInfoFn(ctx, examName)
}

func (s *ExamService) ListExams(ctx context.Context) ([]string, error) {
	return s.ListExamsFn(ctx)
}

func (s *ExamService) Stats(ctx context.Context, examName string) (certquiz.ExamStats, error) {
	return s.StatsFn(ctx, examName)
}

func (s *ExamService) DeleteExam(ctx context.Context, examName string) error {
	return s.DeleteExamFn(ctx, examName)
}
