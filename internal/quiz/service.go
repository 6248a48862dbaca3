package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quizgym/internal/db"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrTopicNotFound = errors.New("topic not found")
	ErrQuizNotFound  = errors.New("quiz not found")
)

type CreateQuizInput struct {
	Question      string
	Choices       []string
	CorrectAnswer string
	TopicID       int64
}

type Quiz struct {
	ID            int64    `json:"id"`
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
	TopicID       int64    `json:"topic_id"`
}

type Service struct {
	db db.DBTX
}

func NewService(db db.DBTX) *Service {
	return &Service{db: db}
}

func (s *Service) CreateQuiz(ctx context.Context, in CreateQuizInput) (*Quiz, error) {
	in, err := normalizeCreateInput(in)
	if err != nil {
		return nil, err
	}

	var topicExists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM topics WHERE id = $1)
	`, in.TopicID).Scan(&topicExists); err != nil {
		return nil, fmt.Errorf("check topic: %w", err)
	}
	if !topicExists {
		return nil, ErrTopicNotFound
	}

	choicesRaw, err := json.Marshal(in.Choices)
	if err != nil {
		return nil, fmt.Errorf("marshal choices: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO quizzes (question, choices, correct_answer, topic_id, created_at)
		VALUES ($1, $2::jsonb, $3, $4, now())
		RETURNING id, question, choices, correct_answer, topic_id
	`, in.Question, string(choicesRaw), in.CorrectAnswer, in.TopicID)
	out, err := scanQuiz(row)
	if err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}
	return out, nil
}

// CreateBulkQuizzes inserts every input in a single transaction. Either all
// rows are committed or none are. Inputs are expected to be validated already.
func (s *Service) CreateBulkQuizzes(ctx context.Context, items []CreateQuizInput) ([]Quiz, error) {
	if len(items) == 0 {
		return []Quiz{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quizzes (question, choices, correct_answer, topic_id, created_at)
		VALUES ($1, $2::jsonb, $3, $4, now())
		RETURNING id, question, choices, correct_answer, topic_id
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert quiz: %w", err)
	}
	defer stmt.Close()

	created := make([]Quiz, 0, len(items))
	for i, it := range items {
		choicesRaw, err := json.Marshal(it.Choices)
		if err != nil {
			return nil, fmt.Errorf("marshal choices: %w", err)
		}
		q, err := scanQuiz(stmt.QueryRowContext(ctx, it.Question, string(choicesRaw), it.CorrectAnswer, it.TopicID))
		if err != nil {
			return nil, fmt.Errorf("insert quiz %d: %w", i+1, err)
		}
		created = append(created, *q)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

func (s *Service) GetQuiz(ctx context.Context, id int64) (*Quiz, error) {
	if id <= 0 {
		return nil, ErrQuizNotFound
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, choices, correct_answer, topic_id
		FROM quizzes
		WHERE id = $1
	`, id)
	out, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	return out, nil
}

func (s *Service) ListQuizzesByTopic(ctx context.Context, topicID int64) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, choices, correct_answer, topic_id
		FROM quizzes
		WHERE topic_id = $1
		ORDER BY id ASC
	`, topicID)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	items := make([]Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		items = append(items, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}
	return items, nil
}

func normalizeCreateInput(in CreateQuizInput) (CreateQuizInput, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.CorrectAnswer = strings.TrimSpace(in.CorrectAnswer)
	if in.Question == "" || in.CorrectAnswer == "" || in.TopicID <= 0 {
		return in, ErrInvalidInput
	}

	choices := make([]string, 0, len(in.Choices))
	for _, c := range in.Choices {
		c = strings.TrimSpace(c)
		if c == "" {
			return in, fmt.Errorf("%w: choices must not be empty", ErrInvalidInput)
		}
		choices = append(choices, c)
	}
	if len(choices) < 2 {
		return in, fmt.Errorf("%w: at least 2 choices are required", ErrInvalidInput)
	}
	in.Choices = choices

	for _, c := range choices {
		if c == in.CorrectAnswer {
			return in, nil
		}
	}
	return in, fmt.Errorf("%w: correct_answer must be one of the choices", ErrInvalidInput)
}

func scanQuiz(scanner interface{ Scan(dest ...any) error }) (*Quiz, error) {
	var out Quiz
	var choicesRaw []byte
	if err := scanner.Scan(&out.ID, &out.Question, &choicesRaw, &out.CorrectAnswer, &out.TopicID); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(choicesRaw, &out.Choices); err != nil {
		return nil, fmt.Errorf("decode choices: %w", err)
	}
	return &out, nil
}
