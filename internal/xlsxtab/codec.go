// Package xlsxtab reads and writes a single-sheet spreadsheet file as an
// ordered sequence of loosely-typed row mappings.
//
// The codec is schema-driven: the column set is derived once from a record
// struct type via JSON Schema reflection, and every write emits exactly
// those columns in declaration order as the header row. Reads key cells by
// whatever header the file carries, so extra columns survive decoding and
// are left for the caller to drop.
package xlsxtab

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// Codec encodes and decodes rows of one record type.
type Codec struct {
	columns []Column
}

// NewCodec creates a codec whose column schema is derived from T.
func NewCodec[T any]() (*Codec, error) {
	columns, err := columnsFromType[T]()
	if err != nil {
		return nil, fmt.Errorf("failed to derive column schema: %w", err)
	}
	return &Codec{columns: columns}, nil
}

// Columns returns the schema column names in header order.
func (c *Codec) Columns() []string {
	names := make([]string, len(c.columns))
	for i, col := range c.columns {
		names[i] = col.Name
	}
	return names
}

// Read decodes the file into ordered row mappings keyed by the file's
// header row. A missing file is reported as fs.ErrNotExist so the caller
// can treat it as an empty collection.
func (c *Codec) Read(path string) ([]map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}
	if len(cells) == 0 {
		return []map[string]any{}, nil
	}

	header := cells[0]
	rows := make([]map[string]any, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(map[string]any, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			// excelize trims trailing empty cells.
			if i < len(line) {
				row[name] = line[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write encodes the rows to the file, replacing its whole content. The
// parent directory is created if needed. Only schema columns are written,
// in header order; missing values become empty cells.
func (c *Codec) Write(path string, rows []map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	header := make([]any, len(c.columns))
	for i, col := range c.columns {
		header[i] = col.Name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range rows {
		line := make([]any, len(c.columns))
		for i, col := range c.columns {
			line[i] = row[col.Name]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &line); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
