package quizimport

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"quizgym/internal/quiz"
	"quizgym/internal/topic"

	"github.com/xuri/excelize/v2"
)

var fullHeader = []string{
	"Question", "Choice 1", "Choice 2", "Choice 3", "Choice 4", "Correct Answer", "Topic ID",
}

func textRow(vals ...string) []Cell {
	out := make([]Cell, len(vals))
	for i, v := range vals {
		out[i] = TextCell(v)
	}
	return out
}

func dataset(rows ...[]Cell) *Dataset {
	return NewDataset(fullHeader, rows)
}

type fakeTopics struct {
	known map[int64]bool
	err   error
	calls int
}

func newFakeTopics(ids ...int64) *fakeTopics {
	known := make(map[int64]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &fakeTopics{known: known}
}

func (f *fakeTopics) GetTopic(ctx context.Context, id int64) (*topic.Topic, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if !f.known[id] {
		return nil, topic.ErrTopicNotFound
	}
	return &topic.Topic{ID: id, Title: "t"}, nil
}

type fakeSession struct {
	*fakeTopics
	writeFn  func(ctx context.Context, items []quiz.CreateQuizInput) ([]quiz.Quiz, error)
	written  [][]quiz.CreateQuizInput
	logs     []ImportLog
	closed   int
	closeErr error
}

func (s *fakeSession) CreateBulkQuizzes(ctx context.Context, items []quiz.CreateQuizInput) ([]quiz.Quiz, error) {
	s.written = append(s.written, items)
	if s.writeFn != nil {
		return s.writeFn(ctx, items)
	}
	out := make([]quiz.Quiz, len(items))
	for i, it := range items {
		out[i] = quiz.Quiz{
			ID:            int64(i + 1),
			Question:      it.Question,
			Choices:       it.Choices,
			CorrectAnswer: it.CorrectAnswer,
			TopicID:       it.TopicID,
		}
	}
	return out, nil
}

func (s *fakeSession) RecordImport(ctx context.Context, entry ImportLog) error {
	s.logs = append(s.logs, entry)
	return nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return s.closeErr
}

var errBoom = errors.New("boom")

// buildWorkbook writes rows into the first sheet of a fresh workbook.
func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func headerRow() []any {
	out := make([]any, len(fullHeader))
	for i, h := range fullHeader {
		out[i] = h
	}
	return out
}
