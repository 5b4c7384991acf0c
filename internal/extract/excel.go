package extract

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// extractExcel streams rows sheet by sheet and stops as soon as buf is full, so a
// large workbook only costs the rows the preview shows.
func extractExcel(content []byte, buf *textBuffer) error {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		if buf.Full() {
			return nil
		}
		if err := extractSheet(f, sheet, buf); err != nil {
			return err
		}
	}
	return nil
}

func extractSheet(f *excelize.File, sheet string, buf *textBuffer) error {
	rows, err := f.Rows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("read row in sheet %q: %w", sheet, err)
		}
		for _, cell := range cells {
			if !buf.WriteString(cell) {
				return nil
			}
			buf.Break()
		}
	}
	return rows.Error()
}
