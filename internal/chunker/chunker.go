// Package chunker normalizes document text and splits it into
// overlapping fixed-size windows for embedding and retrieval.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docsage/docsage/internal/core/domain"
)

// DefaultSize is the default number of characters per chunk.
const DefaultSize = 800

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 100

var (
	crRe      = regexp.MustCompile(`\r\n?`)
	ctrlRe    = regexp.MustCompile(`[\x00-\x08\x0b-\x1f\x7f]`)
	blankRe   = regexp.MustCompile(`[ \t]+`)
	edgeRe    = regexp.MustCompile(`[ \t]+\n|\n[ \t]+`)
	newlineRe = regexp.MustCompile(`\n{3,}`)
)

// Normalize prepares raw extracted text for chunking: carriage returns
// become newlines, control characters and runs of blanks collapse to a
// single space, runs of newlines are bounded to two, and the result is
// trimmed. An unreadable document (scanned PDF) normalizes to "".
func Normalize(text string) string {
	text = crRe.ReplaceAllString(text, "\n")
	text = ctrlRe.ReplaceAllString(text, " ")
	text = blankRe.ReplaceAllString(text, " ")
	text = edgeRe.ReplaceAllString(text, "\n")
	text = newlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Chunker splits normalized text into sliding windows of size characters
// where consecutive windows share overlap characters.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the window size in characters.
func WithSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker. A size that does not exceed the overlap would
// never advance the window, so it is rejected as a configuration error.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= c.overlap {
		return nil, fmt.Errorf("%w: chunk size %d must exceed overlap %d",
			domain.ErrInvalidInput, c.size, c.overlap)
	}

	return c, nil
}

// Size returns the configured window size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured window overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split cuts normalized text into ordered windows. Window i covers
// [start, start+size); the next window starts at start+size-overlap,
// clamped at zero, and iteration stops once a window reaches the end of
// the text. Whitespace-only windows are dropped, so a chunk's position
// in the result always reflects output order. Empty text yields nil.
//
// Windows are measured in runes so multi-byte text never splits inside
// a character.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	estimated := len(runes)/(c.size-c.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < len(runes) {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, window)
		}

		if end == len(runes) {
			break
		}

		start = end - c.overlap
		if start < 0 {
			start = 0
		}
	}

	if len(chunks) == 0 {
		return nil
	}
	return chunks
}
