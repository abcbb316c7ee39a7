package models

// WorkbookData represents a workbook loaded as a set of tables.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Tables maps sheet name to its table.
	Tables map[string]*Table `json:"tables"`
}
