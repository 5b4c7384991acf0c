package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractWithCat handles RTF and ODT, which lu4p/cat detects from the bytes themselves.
func extractWithCat(content []byte, buf *textBuffer) error {
	text, err := cat.FromBytes(content)
	if err != nil {
		return fmt.Errorf("extract document: %w", err)
	}
	buf.WriteString(text)
	return nil
}
