// Package fs provides a JSON-file implementation of certquiz.ExamService.
// Each exam lives under its own directory with one file per question
// and per discussion, plus metadata and the latest extraction report.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"certquiz"
)

// Ensure ExamStore implements certquiz.ExamService at compile time.
var _ certquiz.ExamService = (*ExamStore)(nil)

const (
	questionsDir   = "questions"
	discussionsDir = "discussions"
	backupsDir     = "backups"
	metadataFile   = "metadata.json"
	reportFile     = "extraction_report.json"
)

// ExamStore stores exam records as JSON files under a data directory:
//
//	<dataDir>/exams/<exam>/questions/question_NNN.json
//	<dataDir>/exams/<exam>/discussions/question_N.json
//	<dataDir>/exams/<exam>/metadata.json
//	<dataDir>/exams/<exam>/extraction_report.json
//	<dataDir>/backups/<exam>_<timestamp>/
type ExamStore struct {
	dataDir string
}

// NewExamStore creates an ExamStore rooted at dataDir.
func NewExamStore(dataDir string) *ExamStore {
	return &ExamStore{dataDir: dataDir}
}

// DataDir returns the store's root directory.
func (s *ExamStore) DataDir() string {
	return s.dataDir
}

func (s *ExamStore) examDir(examName string) string {
	return filepath.Join(s.dataDir, "exams", sanitizeName(examName))
}

// unsafeChars matches everything not allowed in a stored file name.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeName makes an exam name safe to use as a directory name.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "unnamed"
	}
	return name
}

// SaveQuestion persists a question, backing up any existing file first.
func (s *ExamStore) SaveQuestion(ctx context.Context, examName string, q *certquiz.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	dir := filepath.Join(s.examDir(examName), questionsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, certquiz.QuestionFilename(q.Number))
	if err := s.backupFile(examName, path); err != nil {
		return err
	}
	return writeJSON(path, q)
}

// SaveDiscussion persists a discussion thread.
func (s *ExamStore) SaveDiscussion(ctx context.Context, examName string, d *certquiz.Discussion) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dir := filepath.Join(s.examDir(examName), discussionsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, sanitizeName(d.QuestionID)+".json")
	return writeJSON(path, d)
}

// SaveExamInfo persists exam metadata.
func (s *ExamStore) SaveExamInfo(ctx context.Context, info *certquiz.ExamInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	dir := s.examDir(info.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, metadataFile), info)
}

// SaveReport persists the latest extraction report.
func (s *ExamStore) SaveReport(ctx context.Context, examName string, report *certquiz.ExtractionReport) error {
	dir := s.examDir(examName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, reportFile), report)
}

// LoadQuestion retrieves a question by number.
func (s *ExamStore) LoadQuestion(ctx context.Context, examName string, number int) (*certquiz.Question, error) {
	path := filepath.Join(s.examDir(examName), questionsDir, certquiz.QuestionFilename(number))

	var q certquiz.Question
	if err := readJSON(path, &q); err != nil {
		if os.IsNotExist(err) {
			return nil, certquiz.Errorf(certquiz.ENOTFOUND, "question %d not found for exam %q", number, examName)
		}
		return nil, err
	}
	return &q, nil
}

// LoadQuestions retrieves all questions for an exam, sorted by number.
func (s *ExamStore) LoadQuestions(ctx context.Context, examName string) ([]*certquiz.Question, error) {
	dir := filepath.Join(s.examDir(examName), questionsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, certquiz.Errorf(certquiz.ENOTFOUND, "exam %q not found", examName)
		}
		return nil, err
	}

	var questions []*certquiz.Question
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var q certquiz.Question
		if err := readJSON(filepath.Join(dir, entry.Name()), &q); err != nil {
			continue // skip unreadable files rather than failing the load
		}
		questions = append(questions, &q)
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Number < questions[j].Number
	})
	return questions, nil
}

// LoadDiscussion retrieves the discussion for a question.
func (s *ExamStore) LoadDiscussion(ctx context.Context, examName, questionID string) (*certquiz.Discussion, error) {
	path := filepath.Join(s.examDir(examName), discussionsDir, sanitizeName(questionID)+".json")

	var d certquiz.Discussion
	if err := readJSON(path, &d); err != nil {
		if os.IsNotExist(err) {
			return nil, certquiz.Errorf(certquiz.ENOTFOUND, "no discussion for %q in exam %q", questionID, examName)
		}
		return nil, err
	}
	return &d, nil
}

// LoadExamInfo retrieves exam metadata.
func (s *ExamStore) LoadExamInfo(ctx context.Context, examName string) (*certquiz.ExamInfo, error) {
	path := filepath.Join(s.examDir(examName), metadataFile)

	var info certquiz.ExamInfo
	if err := readJSON(path, &info); err != nil {
		if os.IsNotExist(err) {
			return nil, certquiz.Errorf(certquiz.ENOTFOUND, "exam %q not found", examName)
		}
		return nil, err
	}
	return &info, nil
}

// ListExams returns the names of all stored exams, sorted.
func (s *ExamStore) ListExams(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, "exams"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Stats returns record counts for an exam.
func (s *ExamStore) Stats(ctx context.Context, examName string) (certquiz.ExamStats, error) {
	var stats certquiz.ExamStats

	if _, err := os.Stat(s.examDir(examName)); err != nil {
		if os.IsNotExist(err) {
			return stats, certquiz.Errorf(certquiz.ENOTFOUND, "exam %q not found", examName)
		}
		return stats, err
	}

	stats.Questions = countJSONFiles(filepath.Join(s.examDir(examName), questionsDir))
	stats.Discussions = countJSONFiles(filepath.Join(s.examDir(examName), discussionsDir))
	return stats, nil
}

// DeleteExam permanently removes an exam and all its records.
func (s *ExamStore) DeleteExam(ctx context.Context, examName string) error {
	dir := s.examDir(examName)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return certquiz.Errorf(certquiz.ENOTFOUND, "exam %q not found", examName)
		}
		return err
	}
	return os.RemoveAll(dir)
}

// backupFile copies an existing file into a timestamped backup
// directory before it is overwritten. Missing files need no backup.
func (s *ExamStore) backupFile(examName, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	stamp := time.Now().UTC().Format("20060102T150405")
	dir := filepath.Join(s.dataDir, backupsDir, sanitizeName(examName)+"_"+stamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filepath.Base(path)), data, 0644)
}

func countJSONFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			n++
		}
	}
	return n
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
