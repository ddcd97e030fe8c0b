package driven

import "context"

// TextExtractor converts raw file bytes of a specific format into plain
// text. Format parsing itself is an external concern; implementations may
// parse locally (plain text) or delegate to an extraction service.
type TextExtractor interface {
	// Extensions returns the lowercase file extensions this extractor
	// handles, without leading dots.
	Extensions() []string

	// Extract converts file bytes into plain text. The returned text is
	// raw; whitespace normalization happens in the chunker.
	Extract(ctx context.Context, data []byte, ext string) (string, error)
}

// ExtractorRegistry selects a text extractor by file extension.
type ExtractorRegistry interface {
	// ForExtension returns the extractor for ext, or false if the
	// extension is unsupported.
	ForExtension(ext string) (TextExtractor, bool)

	// SupportedExtensions returns all registered extensions.
	SupportedExtensions() []string
}
