package extractor

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/docsage/docsage/internal/core/ports/driven"
)

// Ensure PlainText implements the interface.
var _ driven.TextExtractor = (*PlainText)(nil)

// PlainText extracts text from formats that are already text.
type PlainText struct{}

// NewPlainText creates a plain text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Extensions returns the text formats handled locally.
func (p *PlainText) Extensions() []string {
	return []string{"txt", "md"}
}

// Extract interprets the bytes as UTF-8 text. A UTF-8 BOM is stripped;
// invalid sequences are replaced rather than rejected, since partially
// mangled text is still worth indexing.
func (p *PlainText) Extract(_ context.Context, data []byte, _ string) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	return string(bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))), nil
}
