package driven

import (
	"context"

	"github.com/docsage/docsage/internal/core/domain"
)

// VectorSearcher performs owner-scoped similarity search over stored
// chunks.
//
// Scoping is enforced at the query level, not by filtering results after
// the fact: candidates are restricted to chunks whose owning document
// belongs to scope.OwnerID (and to scope.DocumentID when set) before any
// similarity is computed, so the guarantee holds under concurrent
// ingestion. Only chunks with a present embedding, belonging to documents
// in a retrievable state, are eligible.
type VectorSearcher interface {
	// SearchChunks returns the k most similar chunks to the query
	// vector within the scope, ordered by score descending with ties
	// broken by ascending chunk index. An empty result is a valid
	// outcome, not an error.
	SearchChunks(ctx context.Context, query []float32, scope domain.RetrievalScope, k int) ([]domain.Match, error)
}
