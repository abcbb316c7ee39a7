package models

// Table represents the rows of one backing sheet plus the header labels that
// produced them.
type Table struct {
	// Name is the sheet name the table was fetched under.
	Name string `json:"name"`
	// Columns are the header labels in sheet order.
	Columns []string `json:"columns"`
	// Rows are the data rows in sheet order.
	Rows []Record `json:"rows,omitempty"`
}

// NewTable builds a Table whose records share the column slice.
func NewTable(name string, columns []string, rows [][]any) *Table {
	t := &Table{
		Name:    name,
		Columns: columns,
		Rows:    make([]Record, 0, len(rows)),
	}
	for _, values := range rows {
		t.Rows = append(t.Rows, Record{Columns: columns, Values: values})
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
