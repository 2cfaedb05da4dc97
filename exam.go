package certquiz

import (
	"context"
	"time"
)

// ExamInfo describes an extracted exam.
type ExamInfo struct {
	Name           string    `json:"name"`
	Vendor         string    `json:"vendor"`
	Code           string    `json:"code"`
	TotalQuestions int       `json:"total_questions"`
	URL            string    `json:"url"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Validate returns an error if the exam info contains invalid fields.
func (e *ExamInfo) Validate() error {
	if e.Name == "" {
		return Errorf(EINVALID, "exam name required")
	}
	return nil
}

// ExtractionReport summarizes one extraction run.
type ExtractionReport struct {
	ExamInfo             ExamInfo  `json:"exam_info"`
	QuestionsExtracted   int       `json:"questions_extracted"`
	DiscussionsExtracted int       `json:"discussions_extracted"`
	ExtractionErrors     []string  `json:"extraction_errors"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Success              bool      `json:"success"`
}

// ExamStats holds per-exam record counts.
type ExamStats struct {
	Questions   int `json:"questions"`
	Discussions int `json:"discussions"`
}

// ExamService represents a service for persisting and retrieving exam
// records. The extraction core hands records to it keyed by exam name
// plus entity identifier and never inspects the storage format.
type ExamService interface {
	// SaveQuestion persists a question for an exam, keyed by number.
	SaveQuestion(ctx context.Context, examName string, q *Question) error

	// SaveDiscussion persists a discussion thread for an exam.
	SaveDiscussion(ctx context.Context, examName string, d *Discussion) error

	// SaveExamInfo persists exam metadata.
	SaveExamInfo(ctx context.Context, info *ExamInfo) error

	// SaveReport persists an extraction report.
	SaveReport(ctx context.Context, examName string, report *ExtractionReport) error

	// LoadQuestion retrieves a question by number.
	// Returns ENOTFOUND if the question does not exist.
	LoadQuestion(ctx context.Context, examName string, number int) (*Question, error)

	// LoadQuestions retrieves all questions for an exam, sorted by number.
	LoadQuestions(ctx context.Context, examName string) ([]*Question, error)

	// LoadDiscussion retrieves the discussion for a question.
	// Returns ENOTFOUND if no discussion was stored.
	LoadDiscussion(ctx context.Context, examName, questionID string) (*Discussion, error)

	// LoadExamInfo retrieves exam metadata.
	// Returns ENOTFOUND if the exam does not exist.
	LoadExamInfo(ctx context.Context, examName string) (*ExamInfo, error)

	// ListExams returns the names of all stored exams, sorted.
	ListExams(ctx context.Context) ([]string, error)

	// Stats returns record counts for an exam.
	Stats(ctx context.Context, examName string) (ExamStats, error)

	// DeleteExam permanently removes an exam and all its records.
	// Returns ENOTFOUND if the exam does not exist.
	DeleteExam(ctx context.Context, examName string) error
}
