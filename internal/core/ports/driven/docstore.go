package driven

import (
	"context"

	"github.com/docsage/docsage/internal/core/domain"
)

// DocumentStore persists documents and their chunk sets.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// UpdateStatus sets a document's lifecycle status and diagnostic
	// detail. The ingestion pipeline is the only caller.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, lastError string) error

	// ReplaceChunks atomically replaces the document's chunk set:
	// all prior chunks are deleted, the new set is inserted, and the
	// document is marked ready with the new chunk count, in a single
	// transactional boundary. A concurrent reader sees either the old
	// full set or the new full set, never a partial union.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks retrieves all chunks for a document in index order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents belonging to an owner.
	ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error)
}
