// Package models defines data structures shared by the chart pipeline.
package models

// Record represents a single table row.
//
// Values are aligned with Columns by position. Generators read fields by
// position, so the order must be kept exactly as the table provider
// supplied it.
type Record struct {
	// Columns are the header labels of the owning table (shared, read-only).
	Columns []string `json:"-"`
	// Values holds the raw cells: string, float64, int64, bool, time.Time or nil.
	Values []any `json:"values"`
}

// Len returns the number of cells in the row.
func (r Record) Len() int {
	return len(r.Values)
}

// At returns the cell at position i, or nil when the row is shorter.
func (r Record) At(i int) any {
	if i < 0 || i >= len(r.Values) {
		return nil
	}
	return r.Values[i]
}

