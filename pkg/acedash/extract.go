package acedash

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/acedash-go/pkg/acedash/models"
	"github.com/ukaji3/acedash-go/pkg/acedash/parser"
)

// Extract loads every sheet of an xlsx workbook as a table.
// Sheets without a table region become empty tables.
func Extract(path string) (*models.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return ExtractFile(f, filepath.Base(path))
}

// ExtractFile loads every sheet of an open workbook.
func ExtractFile(f *excelize.File, bookName string) (*models.WorkbookData, error) {
	tables := make(map[string]*models.Table)
	for _, sheetName := range f.GetSheetList() {
		table, err := parser.ExtractTable(f, sheetName, parser.DefaultTableParams())
		switch {
		case errors.Is(err, parser.ErrNoTable):
			table = &models.Table{Name: sheetName}
		case err != nil:
			return nil, NewDataSourceError(sheetName, err)
		}
		tables[sheetName] = table
	}

	return &models.WorkbookData{
		BookName: bookName,
		Tables:   tables,
	}, nil
}
