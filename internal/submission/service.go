package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizgym/internal/db"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrQuizNotFound = errors.New("quiz not found")
)

type CreateSubmissionInput struct {
	UserName string
	Selected string
	QuizID   int64
}

type Submission struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	Selected  string    `json:"selected"`
	QuizID    int64     `json:"quiz_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	db db.DBTX
}

func NewService(db db.DBTX) *Service {
	return &Service{db: db}
}

func (s *Service) CreateSubmission(ctx context.Context, in CreateSubmissionInput) (*Submission, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Selected = strings.TrimSpace(in.Selected)
	if in.UserName == "" || in.QuizID <= 0 {
		return nil, fmt.Errorf("%w: user_name and quiz_id are required", ErrInvalidInput)
	}

	var quizExists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM quizzes WHERE id = $1)
	`, in.QuizID).Scan(&quizExists); err != nil {
		return nil, fmt.Errorf("check quiz: %w", err)
	}
	if !quizExists {
		return nil, ErrQuizNotFound
	}

	var out Submission
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO submissions (user_name, selected, quiz_id, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, user_name, selected, quiz_id, created_at
	`, in.UserName, in.Selected, in.QuizID).Scan(&out.ID, &out.UserName, &out.Selected, &out.QuizID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return &out, nil
}

func (s *Service) ListSubmissions(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_name, selected, quiz_id, created_at
		FROM submissions
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	items := make([]Submission, 0)
	for rows.Next() {
		var it Submission
		if err := rows.Scan(&it.ID, &it.UserName, &it.Selected, &it.QuizID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return items, nil
}
