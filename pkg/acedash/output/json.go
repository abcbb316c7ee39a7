// Package output serializes chart results and tables.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// ToJSON serializes v. HTML characters are not escaped so that category
// labels and titles stay readable.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// TableToJSON serializes a table as an array of objects keyed by column
// label. Unlabelled columns are keyed by their one-based position.
func TableToJSON(t *models.Table, pretty bool) ([]byte, error) {
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if c == "" {
			c = fmt.Sprintf("col%d", i+1)
		}
		keys[i] = c
	}

	objects := make([]map[string]any, 0, t.Len())
	for _, r := range t.Rows {
		obj := make(map[string]any, len(keys))
		for i, k := range keys {
			if _, dup := obj[k]; !dup {
				obj[k] = r.At(i)
			}
		}
		objects = append(objects, obj)
	}
	return ToJSON(objects, pretty)
}

// WriteTables writes one <sheet>.json file per table into dir.
func WriteTables(wb *models.WorkbookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for name, table := range wb.Tables {
		data, err := TableToJSON(table, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, safeName(name)+".json")
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

func safeName(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_", ":", "_").Replace(name)
}
