package quizimport

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var spreadsheetExts = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// IsSpreadsheetName reports whether filename carries an accepted workbook
// extension.
func IsSpreadsheetName(filename string) bool {
	return spreadsheetExts[strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))]
}

// ReadDataset loads the first worksheet of an xlsx workbook. Row 1 is the
// header; every following row becomes a data row. Trailing rows without any
// value are dropped.
func ReadDataset(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return NewDataset(nil, nil), nil
	}

	last := len(rows) - 1
	for last > 0 && isRowEmpty(rows[last]) {
		last--
	}

	data := make([][]Cell, 0, last)
	for i := 1; i <= last; i++ {
		cells := make([]Cell, len(rows[i]))
		for j, v := range rows[i] {
			cells[j] = classifyCell(f, sheet, j+1, i+1, v)
		}
		data = append(data, cells)
	}
	return NewDataset(rows[0], data), nil
}

func classifyCell(f *excelize.File, sheet string, col, row int, v string) Cell {
	if v == "" {
		return Cell{Kind: CellBlank}
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return TextCell(v)
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return TextCell(v)
	}
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return NumberCell(v)
		}
	}
	return TextCell(v)
}

func isRowEmpty(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
