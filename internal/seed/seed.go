// Package seed loads the bundled sample topics and quizzes into an empty
// database.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"quizgym/internal/db"
	"quizgym/internal/logging"

	"gopkg.in/yaml.v3"
)

const (
	MessageSeeded        = "Sample data initialized successfully!"
	MessageAlreadyExists = "Sample data already exists"
)

//go:embed samples.yaml
var samplesYAML []byte

type SampleQuiz struct {
	Question      string   `yaml:"question"`
	Choices       []string `yaml:"choices"`
	CorrectAnswer string   `yaml:"correct_answer"`
}

type SampleTopic struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Quizzes     []SampleQuiz `yaml:"quizzes"`
}

type Samples struct {
	Topics []SampleTopic `yaml:"topics"`
}

type Result struct {
	Message string `json:"message"`
	Topics  int    `json:"topics_created"`
	Quizzes int    `json:"quizzes_created"`
}

// LoadSamples parses a samples document and checks every quiz answer is one
// of its choices.
func LoadSamples(raw []byte) (*Samples, error) {
	var s Samples
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}
	for _, t := range s.Topics {
		if t.Title == "" {
			return nil, errors.New("sample topic without title")
		}
		for _, q := range t.Quizzes {
			if !contains(q.Choices, q.CorrectAnswer) {
				return nil, fmt.Errorf("sample quiz %q: answer %q not in choices", q.Question, q.CorrectAnswer)
			}
		}
	}
	return &s, nil
}

func DefaultSamples() (*Samples, error) {
	return LoadSamples(samplesYAML)
}

type Service struct {
	pool    *sql.DB
	samples *Samples
}

func NewService(pool *sql.DB, samples *Samples) *Service {
	return &Service{pool: pool, samples: samples}
}

// Seed inserts the samples in one transaction unless any topic exists.
func (s *Service) Seed(ctx context.Context) (*Result, error) {
	var out *Result
	err := db.WithConn(ctx, s.pool, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM topics)`).Scan(&exists); err != nil {
			return fmt.Errorf("check topics: %w", err)
		}
		if exists {
			out = &Result{Message: MessageAlreadyExists}
			return nil
		}

		res := &Result{Message: MessageSeeded}
		for _, t := range s.samples.Topics {
			var topicID int64
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO topics (title, description, created_at)
				VALUES ($1, $2, now())
				RETURNING id
			`, t.Title, t.Description).Scan(&topicID); err != nil {
				return fmt.Errorf("insert topic %q: %w", t.Title, err)
			}
			res.Topics++

			for _, q := range t.Quizzes {
				choices, err := json.Marshal(q.Choices)
				if err != nil {
					return fmt.Errorf("marshal choices: %w", err)
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO quizzes (question, choices, correct_answer, topic_id, created_at)
					VALUES ($1, $2::jsonb, $3, $4, now())
				`, q.Question, string(choices), q.CorrectAnswer, topicID); err != nil {
					return fmt.Errorf("insert quiz %q: %w", q.Question, err)
				}
				res.Quizzes++
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("sample data", "message", out.Message, "topics", out.Topics, "quizzes", out.Quizzes)
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
