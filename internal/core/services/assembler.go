package services

import (
	"fmt"
	"strings"

	"github.com/docsage/docsage/internal/core/domain"
)

// DefaultTopK is how many retrieved chunks ground an answer.
const DefaultTopK = 5

// NoContextMarker is inserted when retrieval found nothing. The system
// prompt tells the model to fall back to general knowledge in that case.
const NoContextMarker = "No relevant document excerpts were found."

// assembleContext renders retrieved matches as numbered source blocks
// for the system prompt. Matches arrive ordered by relevance; at most
// limit of them are used.
func assembleContext(matches []domain.Match, limit int) string {
	if len(matches) == 0 {
		return NoContextMarker
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Source %d:\n%s", i+1, m.Chunk.Content)
	}
	return b.String()
}
