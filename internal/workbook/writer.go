package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// maxColumnWidth caps auto-sized column widths so long descriptions do not
// produce unreadable sheets.
const maxColumnWidth = 50

// headerStyle is the styling applied to every header row: bold white text on
// the standard blue fill, top-left aligned with wrapping.
func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
	})
}

// sheetWriter appends rows to a single sheet and tracks column content
// widths for the final auto-size pass.
type sheetWriter struct {
	f       *excelize.File
	sheet   string
	styleID int
	nextRow int
	widths  []int
}

// newSheetWriter creates the named sheet and returns a writer positioned at
// its first row.
func newSheetWriter(f *excelize.File, sheet string, styleID int) (*sheetWriter, error) {
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
	}
	return &sheetWriter{f: f, sheet: sheet, styleID: styleID, nextRow: 1}, nil
}

// writeHeader writes and styles the header row.
func (w *sheetWriter) writeHeader(headers []string) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := w.writeRow(cells); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, "A1", last, w.styleID)
}

// writeRow appends one row of values.
func (w *sheetWriter) writeRow(values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, w.nextRow)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", w.sheet, w.nextRow, err)
	}

	for i, v := range values {
		if i >= len(w.widths) {
			w.widths = append(w.widths, 0)
		}
		if n := len(fmt.Sprint(v)); n > w.widths[i] {
			w.widths[i] = n
		}
	}

	w.nextRow++
	return nil
}

// placeholder writes the single "nothing here" cell used for empty sections.
func (w *sheetWriter) placeholder(message string) error {
	return w.f.SetCellValue(w.sheet, "A1", message)
}

// finish applies auto-sized column widths, capped at maxColumnWidth.
func (w *sheetWriter) finish() error {
	for i, width := range w.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		adjusted := width + 2
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := w.f.SetColWidth(w.sheet, col, col, float64(adjusted)); err != nil {
			return err
		}
	}
	return nil
}
