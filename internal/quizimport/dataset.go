package quizimport

import "strings"

// CellKind tags how a spreadsheet cell was populated.
type CellKind int

const (
	CellAbsent CellKind = iota
	CellBlank
	CellText
	CellNumber
)

// Cell is one value read from the workbook. Raw holds the unformatted value
// for both text and numbers, so "1" in a choice column and 1 in the answer
// column compare equal.
type Cell struct {
	Kind CellKind
	Raw  string
}

func TextCell(v string) Cell {
	if v == "" {
		return Cell{Kind: CellBlank}
	}
	return Cell{Kind: CellText, Raw: v}
}

func NumberCell(v string) Cell {
	if v == "" {
		return Cell{Kind: CellBlank}
	}
	return Cell{Kind: CellNumber, Raw: v}
}

// Value returns the trimmed cell text and whether it is non-empty.
func (c Cell) Value() (string, bool) {
	if c.Kind != CellText && c.Kind != CellNumber {
		return "", false
	}
	v := strings.TrimSpace(c.Raw)
	return v, v != ""
}

// Dataset is the header plus data rows of the first worksheet.
type Dataset struct {
	Columns []string
	Rows    [][]Cell

	index map[string]int
}

func NewDataset(columns []string, rows [][]Cell) *Dataset {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; dup {
			continue
		}
		idx[c] = i
	}
	return &Dataset{Columns: columns, Rows: rows, index: idx}
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Cell returns the cell at data row i under the named column. Missing columns
// and cells past the end of a short row are CellAbsent.
func (d *Dataset) Cell(i int, column string) Cell {
	pos, ok := d.index[column]
	if !ok || i < 0 || i >= len(d.Rows) {
		return Cell{}
	}
	row := d.Rows[i]
	if pos >= len(row) {
		return Cell{}
	}
	return row[pos]
}
