package driving

import (
	"context"

	"github.com/docsage/docsage/internal/core/domain"
)

// DocumentCatalog exposes an owner's documents for inspection.
type DocumentCatalog interface {
	// List returns all of an owner's documents.
	List(ctx context.Context, ownerID string) ([]domain.Document, error)

	// Get returns one document. Only the owner may read it.
	Get(ctx context.Context, ownerID, documentID string) (*domain.Document, error)
}
