package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads pages in order until buf is full; later pages are not decoded.
func extractPDF(content []byte, buf *textBuffer) error {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Errorf("open PDF: %w", err)
	}
	for i := 1; i <= r.NumPage() && !buf.Full(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return fmt.Errorf("extract page %d: %w", i, err)
		}
		buf.WriteString(text)
		buf.Break()
	}
	return nil
}
