package source

import (
	"context"
	"fmt"

	"github.com/ukaji3/acedash-go/pkg/acedash"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// Workbook serves the sheets of a local xlsx file. The file is read on
// every fetch, so edits are picked up; wrap it in Cached to avoid that.
type Workbook struct {
	path string
}

// NewWorkbook creates a provider reading the workbook at path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// FetchTable extracts the named sheet.
func (w *Workbook) FetchTable(ctx context.Context, name string) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wb, err := acedash.Extract(w.path)
	if err != nil {
		return nil, err
	}
	t, ok := wb.Tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrSheetNotFound, name, wb.BookName)
	}
	return t, nil
}
