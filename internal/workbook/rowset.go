package workbook

import (
	"fmt"

	"github.com/thiruselvaa/odcs-converter/internal/coerce"
	"github.com/xuri/excelize/v2"
)

// Row is one data row keyed by its sheet's column headers. Cell values are
// already trimmed of Excel artifacts.
type Row struct {
	cells map[string]string
	// Number is the 1-based workbook row the data came from, for reporting.
	Number int
}

// Get returns the cell under the given header, empty when absent.
func (r Row) Get(header string) string {
	return r.cells[header]
}

// Has reports whether the row carries a non-empty cell under the header.
func (r Row) Has(header string) bool {
	return r.cells[header] != ""
}

// RowSet is the data rows of one sheet.
type RowSet []Row

// loadSheet reads a sheet into a RowSet. A missing sheet is not an error: it
// yields an empty set, since partially filled workbooks are legal input.
// Headers come from the first row; rows whose cells are all empty are
// skipped, which also discards the placeholder cell written for empty
// sections.
func loadSheet(f *excelize.File, sheet string) (RowSet, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		if _, ok := err.(excelize.ErrSheetNotExist); ok {
			return nil, nil
		}
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	var set RowSet
	for i, raw := range rows[1:] {
		cells := make(map[string]string, len(headers))
		empty := true
		for col, header := range headers {
			if header == "" || col >= len(raw) {
				continue
			}
			v := coerce.CleanCell(raw[col])
			if v == "" {
				continue
			}
			cells[header] = v
			empty = false
		}
		if empty {
			continue
		}
		set = append(set, Row{cells: cells, Number: i + 2})
	}
	return set, nil
}
