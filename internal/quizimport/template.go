package quizimport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	TemplateFilename = "quiz_template.xlsx"
	TemplateSheet    = "Quiz Template"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var TemplateColumns = []string{
	ColumnQuestion,
	ColumnChoice1,
	ColumnChoice2,
	ColumnChoice3,
	ColumnChoice4,
	ColumnCorrectAnswer,
	ColumnTopicID,
}

var templateRows = [][]any{
	{"What is the capital of France?", "London", "Berlin", "Paris", "Madrid", "Paris", 1},
	{"Which planet is known as the Red Planet?", "Venus", "Mars", "Jupiter", "Saturn", "Mars", 1},
}

// BuildTemplate renders the example workbook served to users who want a
// starting point for an import.
func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(TemplateColumns))
	for i, c := range TemplateColumns {
		header[i] = c
	}
	rows := append([][]any{header}, templateRows...)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(TemplateSheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write template row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}
