package topic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"quizgym/internal/db"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrTopicNotFound = errors.New("topic not found")
)

type Topic struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateTopicInput struct {
	Title       string
	Description string
}

// Lookup resolves a topic by id. Implementations return ErrTopicNotFound when
// the id does not exist.
type Lookup interface {
	GetTopic(ctx context.Context, id int64) (*Topic, error)
}

type Service struct {
	db db.DBTX
}

func NewService(db db.DBTX) *Service {
	return &Service{db: db}
}

func (s *Service) CreateTopic(ctx context.Context, in CreateTopicInput) (*Topic, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	var out Topic
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO topics (title, description, created_at)
		VALUES ($1, $2, now())
		RETURNING id, title, description
	`, title, description).Scan(&out.ID, &out.Title, &out.Description)
	if err != nil {
		return nil, fmt.Errorf("insert topic: %w", err)
	}
	return &out, nil
}

func (s *Service) ListTopics(ctx context.Context) ([]Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description
		FROM topics
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	items := make([]Topic, 0)
	for rows.Next() {
		var it Topic
		if err := rows.Scan(&it.ID, &it.Title, &it.Description); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return items, nil
}

func (s *Service) GetTopic(ctx context.Context, id int64) (*Topic, error) {
	if id <= 0 {
		return nil, ErrTopicNotFound
	}

	var out Topic
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description
		FROM topics
		WHERE id = $1
	`, id).Scan(&out.ID, &out.Title, &out.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("load topic: %w", err)
	}
	return &out, nil
}
