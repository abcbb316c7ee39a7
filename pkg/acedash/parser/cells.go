package parser

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExtractCells reads every row of a sheet as typed values.
// Empty cells are nil, numbers are int64 or float64, cells with a date
// number format are time.Time and everything else is a string. Rows are
// as long as excelize reports them; callers pad as needed.
func ExtractCells(f *excelize.File, sheetName string) ([][]any, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	dates := newDateStyles(f)
	result := make([][]any, len(rows))
	for rowIdx, row := range rows {
		values := make([]any, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			v := parseValue(cellValue)
			if n, ok := number(v); ok {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if t, ok := dates.toTime(sheetName, cellName, n); ok {
					v = t
				}
			}
			values[colIdx] = v
		}
		result[rowIdx] = values
	}

	return result, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
