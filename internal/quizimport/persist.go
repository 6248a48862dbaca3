package quizimport

import (
	"context"
	"errors"

	"quizgym/internal/quiz"

	"github.com/jackc/pgx/v5/pgconn"
)

type QuizWriter interface {
	CreateBulkQuizzes(ctx context.Context, items []quiz.CreateQuizInput) ([]quiz.Quiz, error)
}

// Persist writes every candidate in one batch. Empty input never reaches
// the writer.
func Persist(ctx context.Context, w QuizWriter, candidates []Candidate) ([]quiz.Quiz, error) {
	if len(candidates) == 0 {
		return []quiz.Quiz{}, nil
	}

	items := make([]quiz.CreateQuizInput, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, quiz.CreateQuizInput{
			Question:      c.Question,
			Choices:       c.Choices,
			CorrectAnswer: c.CorrectAnswer,
			TopicID:       c.TopicID,
		})
	}
	return w.CreateBulkQuizzes(ctx, items)
}

// databaseErrorMessage prefers the server message for postgres errors over
// the wrapped chain.
func databaseErrorMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return pgErr.Message + " (" + pgErr.Detail + ")"
		}
		return pgErr.Message
	}
	return err.Error()
}
