package extract

import "unicode/utf8"

// extractPlain copies text attachments into buf. Ranging over a string yields U+FFFD
// for each invalid UTF-8 byte, so malformed uploads still preview.
func extractPlain(content []byte, buf *textBuffer) {
	if utf8.Valid(content) {
		buf.WriteString(string(content))
		return
	}
	for len(content) > 0 && !buf.Full() {
		r, size := utf8.DecodeRune(content)
		buf.WriteString(string(r))
		content = content[size:]
	}
}
