package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// ErrNoTable indicates a sheet without a table-like region.
var ErrNoTable = errors.New("no table region")

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 2,
	}
}

// Region is the bounding box of a table, zero-based and inclusive.
type Region struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Range returns the region in A1 notation, e.g. "A1:D10".
func (r Region) Range() string {
	startCell, _ := excelize.CoordinatesToCellName(r.MinCol+1, r.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(r.MaxCol+1, r.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// Width returns the number of columns in the region.
func (r Region) Width() int {
	return r.MaxCol - r.MinCol + 1
}

// DetectTable finds the table-like region of a sheet's cells.
func DetectTable(rows [][]any, params TableDetectionParams) (Region, error) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return Region{}, ErrNoTable
	}
	region := Region{MinRow: minRow, MaxRow: maxRow, MinCol: minCol, MaxCol: maxCol}

	totalCells := (maxRow - minRow + 1) * region.Width()
	nonEmptyCells := countNonEmptyCells(rows, region)
	if nonEmptyCells < params.MinNonemptyCells {
		return Region{}, fmt.Errorf("%w: %d non-empty cells", ErrNoTable, nonEmptyCells)
	}
	if density := float64(nonEmptyCells) / float64(totalCells); density < params.DensityMin {
		return Region{}, fmt.Errorf("%w: density %.3f", ErrNoTable, density)
	}
	return region, nil
}

// ExtractTable reads a sheet as a table. The first row of the detected
// region is the header; each following non-empty row becomes a record as
// wide as the header.
func ExtractTable(f *excelize.File, sheetName string, params TableDetectionParams) (*models.Table, error) {
	rows, err := ExtractCells(f, sheetName)
	if err != nil {
		return nil, err
	}
	region, err := DetectTable(rows, params)
	if err != nil {
		return nil, err
	}

	width := region.Width()
	header := slice(rows[region.MinRow], region.MinCol, width)
	columns := make([]string, width)
	for i, v := range header {
		columns[i] = label(v)
	}

	data := make([][]any, 0, region.MaxRow-region.MinRow)
	for rowIdx := region.MinRow + 1; rowIdx <= region.MaxRow; rowIdx++ {
		values := slice(rows[rowIdx], region.MinCol, width)
		if isEmpty(values) {
			continue
		}
		data = append(data, values)
	}
	return models.NewTable(sheetName, columns, data), nil
}

// slice copies width cells starting at col, padding short rows with nil.
func slice(row []any, col, width int) []any {
	out := make([]any, width)
	for i := range out {
		if c := col + i; c < len(row) {
			out[i] = row[c]
		}
	}
	return out
}

func isEmpty(values []any) bool {
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}

func label(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.DateOnly)
	default:
		return fmt.Sprint(x)
	}
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]any) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != nil {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within r.
func countNonEmptyCells(rows [][]any, r Region) int {
	count := 0
	for rowIdx := r.MinRow; rowIdx <= r.MaxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := r.MinCol; colIdx <= r.MaxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != nil {
				count++
			}
		}
	}
	return count
}
