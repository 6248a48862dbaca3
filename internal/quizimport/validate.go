package quizimport

import (
	"context"
	"fmt"
	"strings"

	"quizgym/internal/topic"
)

// RequiredColumns must all appear in the header row.
var RequiredColumns = []string{
	ColumnQuestion,
	ColumnChoice1,
	ColumnChoice2,
	ColumnChoice3,
	ColumnChoice4,
	ColumnCorrectAnswer,
}

type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// RowError is a failure attributed to one spreadsheet row. Row is the number
// shown by spreadsheet tools, so the first data row is 2.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// CheckColumns fails with *MissingColumnsError when any required column is
// absent from the header.
func CheckColumns(ds *Dataset) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

type Validator struct {
	topics topic.Lookup
}

func NewValidator(topics topic.Lookup) *Validator {
	return &Validator{topics: topics}
}

// Validate scans rows in order and splits them into candidates and row
// errors. Column checks run first; when they fail no topic is looked up.
func (v *Validator) Validate(ctx context.Context, ds *Dataset, defaultTopicID *int64) ([]Candidate, []RowError, error) {
	if err := CheckColumns(ds); err != nil {
		return nil, nil, err
	}

	candidates := make([]Candidate, 0, ds.Len())
	rowErrors := make([]RowError, 0)
	for i := 0; i < ds.Len(); i++ {
		res := normalizeRow(ctx, v.topics, ds, i, defaultTopicID)
		if res.candidate == nil {
			rowErrors = append(rowErrors, RowError{Row: i + 2, Reason: res.reason})
			continue
		}
		candidates = append(candidates, *res.candidate)
	}
	return candidates, rowErrors, nil
}
