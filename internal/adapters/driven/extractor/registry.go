// Package extractor provides text extraction from uploaded file
// formats. Plain text formats are read locally; binary formats are
// delegated to an extraction service.
package extractor

import (
	"sort"

	"github.com/docsage/docsage/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors. Later registrations win
// when two extractors claim the same extension.
type Registry struct {
	byExt map[string]driven.TextExtractor
}

// NewRegistry creates a registry over the given extractors.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.TextExtractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[ext] = e
		}
	}
	return r
}

// ForExtension returns the extractor for ext, or false if unsupported.
func (r *Registry) ForExtension(ext string) (driven.TextExtractor, bool) {
	e, ok := r.byExt[ext]
	return e, ok
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
