package quizimport

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"quizgym/internal/topic"
)

const (
	ColumnQuestion      = "Question"
	ColumnChoice1       = "Choice 1"
	ColumnChoice2       = "Choice 2"
	ColumnChoice3       = "Choice 3"
	ColumnChoice4       = "Choice 4"
	ColumnCorrectAnswer = "Correct Answer"
	ColumnTopicID       = "Topic ID"
)

var choiceColumns = []string{ColumnChoice1, ColumnChoice2, ColumnChoice3, ColumnChoice4}

// Candidate is a validated row waiting to be persisted.
type Candidate struct {
	Question      string
	Choices       []string
	CorrectAnswer string
	TopicID       int64
}

// rowResult holds exactly one of candidate or reason.
type rowResult struct {
	candidate *Candidate
	reason    string
}

func rowErr(format string, args ...any) rowResult {
	return rowResult{reason: fmt.Sprintf(format, args...)}
}

func normalizeRow(ctx context.Context, topics topic.Lookup, ds *Dataset, i int, defaultTopicID *int64) rowResult {
	topicID, err := resolveTopicID(ds.Cell(i, ColumnTopicID), defaultTopicID)
	if err != nil {
		return rowResult{reason: err.Error()}
	}
	if topicID == 0 {
		return rowErr("No topic ID provided")
	}

	if _, err := topics.GetTopic(ctx, topicID); err != nil {
		if errors.Is(err, topic.ErrTopicNotFound) {
			return rowErr("Topic with ID %d not found", topicID)
		}
		return rowResult{reason: err.Error()}
	}

	question, ok := ds.Cell(i, ColumnQuestion).Value()
	if !ok {
		return rowErr("Question is required")
	}

	answer, ok := ds.Cell(i, ColumnCorrectAnswer).Value()
	if !ok {
		return rowErr("Correct Answer is required")
	}

	choices := make([]string, 0, len(choiceColumns))
	for _, col := range choiceColumns {
		if v, ok := ds.Cell(i, col).Value(); ok {
			choices = append(choices, v)
		}
	}
	if len(choices) < 2 {
		return rowErr("At least 2 choices are required")
	}

	found := false
	for _, c := range choices {
		if c == answer {
			found = true
			break
		}
	}
	if !found {
		return rowErr("Correct answer '%s' must be one of the choices", answer)
	}

	return rowResult{candidate: &Candidate{
		Question:      question,
		Choices:       choices,
		CorrectAnswer: answer,
		TopicID:       topicID,
	}}
}

// resolveTopicID prefers a non-blank Topic ID cell over the default. A zero
// result means no id could be resolved.
func resolveTopicID(c Cell, defaultTopicID *int64) (int64, error) {
	v, ok := c.Value()
	if !ok {
		if defaultTopicID != nil {
			return *defaultTopicID, nil
		}
		return 0, nil
	}

	if c.Kind == CellNumber {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
			return 0, fmt.Errorf("invalid Topic ID '%s'", v)
		}
		return int64(f), nil
	}

	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid Topic ID '%s'", v)
	}
	return id, nil
}
