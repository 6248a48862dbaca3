package quizimport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"quizgym/internal/logging"
	"quizgym/internal/quiz"
	"quizgym/internal/topic"

	"github.com/google/uuid"
)

var ErrUnsupportedFile = errors.New("File must be an Excel file (.xlsx or .xls)")

// ProcessingError wraps failures that are not the uploader's fault in a
// recognisable way: an unreadable workbook or an unavailable store.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "Error processing file: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

type ImportLog struct {
	ID             uuid.UUID
	Filename       string
	DefaultTopicID *int64
	CreatedCount   int
	ErrorCount     int
}

// Session is the store access held for the duration of one import.
type Session interface {
	topic.Lookup
	QuizWriter
	RecordImport(ctx context.Context, entry ImportLog) error
	Close() error
}

type SessionOpener func(ctx context.Context) (Session, error)

// Recorder receives per-import counters.
type Recorder interface {
	RecordImport(created, rowErrors int, persistFailed bool)
}

type ImportRequest struct {
	Filename       string
	Content        io.Reader
	DefaultTopicID *int64
}

type ImportResult struct {
	ID     uuid.UUID
	Report ImportReport
}

type Service struct {
	open    SessionOpener
	metrics Recorder
}

func NewService(open SessionOpener, metrics Recorder) *Service {
	return &Service{open: open, metrics: metrics}
}

// Import runs one spreadsheet through validation and persistence. Bad file
// types, unreadable workbooks and missing columns fail the whole request;
// everything else is reported per row in the returned report.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if !IsSpreadsheetName(req.Filename) {
		return nil, ErrUnsupportedFile
	}

	ds, err := ReadDataset(req.Content)
	if err != nil {
		return nil, &ProcessingError{Err: err}
	}
	if err := CheckColumns(ds); err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := logging.WithFields(ctx, "import_id", id.String(), "filename", req.Filename)

	sess, err := s.open(ctx)
	if err != nil {
		return nil, &ProcessingError{Err: err}
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn("release import session", "error", err)
		}
	}()

	candidates, rowErrors, err := NewValidator(sess).Validate(ctx, ds, req.DefaultTopicID)
	if err != nil {
		return nil, err
	}

	errs := make([]string, 0, len(rowErrors)+1)
	for _, re := range rowErrors {
		errs = append(errs, re.String())
	}

	created := 0
	persistFailed := false
	if len(candidates) > 0 {
		quizzes, err := Persist(ctx, sess, candidates)
		if err != nil {
			persistFailed = true
			logger.Error("bulk insert failed", "candidates", len(candidates), "error", err)
			errs = append(errs, "Database error: "+databaseErrorMessage(err))
		} else {
			created = len(quizzes)
		}
	}

	report := BuildReport(created, errs)

	if err := sess.RecordImport(ctx, ImportLog{
		ID:             id,
		Filename:       req.Filename,
		DefaultTopicID: req.DefaultTopicID,
		CreatedCount:   created,
		ErrorCount:     len(errs),
	}); err != nil {
		logger.Warn("record import", "error", err)
	}
	if s.metrics != nil {
		s.metrics.RecordImport(created, len(rowErrors), persistFailed)
	}

	logger.Info("import finished",
		"rows", ds.Len(),
		"created", created,
		"errors", len(errs),
	)
	return &ImportResult{ID: id, Report: report}, nil
}

// PostgresSessions opens one pooled connection per import. Topic lookups go
// through cache when it is non-nil.
func PostgresSessions(pool *sql.DB, cache topic.Cache, ttl time.Duration) SessionOpener {
	return func(ctx context.Context) (Session, error) {
		if pool == nil {
			return nil, errors.New("database is not configured")
		}
		conn, err := pool.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire conn: %w", err)
		}
		return &pgSession{
			conn:    conn,
			topics:  topic.NewCachedLookup(topic.NewService(conn), cache, ttl),
			quizzes: quiz.NewService(conn),
		}, nil
	}
}

type pgSession struct {
	conn    *sql.Conn
	topics  topic.Lookup
	quizzes *quiz.Service
}

func (s *pgSession) GetTopic(ctx context.Context, id int64) (*topic.Topic, error) {
	return s.topics.GetTopic(ctx, id)
}

func (s *pgSession) CreateBulkQuizzes(ctx context.Context, items []quiz.CreateQuizInput) ([]quiz.Quiz, error) {
	return s.quizzes.CreateBulkQuizzes(ctx, items)
}

func (s *pgSession) RecordImport(ctx context.Context, entry ImportLog) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO quiz_imports (id, filename, default_topic_id, created_count, error_count, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, entry.ID, entry.Filename, entry.DefaultTopicID, entry.CreatedCount, entry.ErrorCount)
	if err != nil {
		return fmt.Errorf("insert quiz import: %w", err)
	}
	return nil
}

func (s *pgSession) Close() error {
	return s.conn.Close()
}
