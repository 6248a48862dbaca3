package quizimport

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestReadDatasetClassifiesCells(t *testing.T) {
	raw := buildWorkbook(t, [][]any{
		headerRow(),
		{"Capital of France?", "London", "Paris", "", "", "Paris", 3},
		{"2+2?", 3, 4, 5, nil, 4, "1"},
	})

	ds, err := ReadDataset(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, fullHeader) {
		t.Fatalf("unexpected columns: %q", ds.Columns)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", ds.Len())
	}

	if c := ds.Cell(0, "Question"); c.Kind != CellText || c.Raw != "Capital of France?" {
		t.Fatalf("unexpected question cell: %+v", c)
	}
	if c := ds.Cell(0, "Topic ID"); c.Kind != CellNumber || c.Raw != "3" {
		t.Fatalf("unexpected numeric topic cell: %+v", c)
	}
	if c := ds.Cell(1, "Topic ID"); c.Kind != CellText || c.Raw != "1" {
		t.Fatalf("unexpected text topic cell: %+v", c)
	}
	if c := ds.Cell(1, "Choice 2"); c.Kind != CellNumber || c.Raw != "4" {
		t.Fatalf("unexpected numeric choice cell: %+v", c)
	}
	if _, ok := ds.Cell(1, "Choice 4").Value(); ok {
		t.Fatalf("expected empty Choice 4")
	}
	if c := ds.Cell(0, "Nope"); c.Kind != CellAbsent {
		t.Fatalf("expected absent cell for unknown column, got %+v", c)
	}
}

func TestReadDatasetHeaderOnly(t *testing.T) {
	raw := buildWorkbook(t, [][]any{headerRow()})
	ds, err := ReadDataset(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	if ds.Len() != 0 {
		t.Fatalf("expected no data rows, got %d", ds.Len())
	}
	if err := CheckColumns(ds); err != nil {
		t.Fatalf("unexpected column error: %v", err)
	}
}

func TestReadDatasetRejectsGarbage(t *testing.T) {
	if _, err := ReadDataset(strings.NewReader("not a workbook")); err == nil {
		t.Fatalf("expected error for non-xlsx content")
	}
}

func TestDatasetFirstDuplicateColumnWins(t *testing.T) {
	ds := NewDataset([]string{"Question", "Question"}, [][]Cell{textRow("first", "second")})
	v, _ := ds.Cell(0, "Question").Value()
	if v != "first" {
		t.Fatalf("expected first column, got %q", v)
	}
}

func TestIsSpreadsheetName(t *testing.T) {
	cases := map[string]bool{
		"quizzes.xlsx":  true,
		"QUIZZES.XLSX":  true,
		"legacy.xls":    true,
		"quizzes.csv":   false,
		"quizzes.xlsx.": false,
		"xlsx":          false,
		"":              false,
	}
	for name, want := range cases {
		if got := IsSpreadsheetName(name); got != want {
			t.Fatalf("IsSpreadsheetName(%q) = %v, want %v", name, got, want)
		}
	}
}
