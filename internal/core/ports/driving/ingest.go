package driving

import (
	"context"

	"github.com/docsage/docsage/internal/core/domain"
)

// Ingestor runs the document ingestion pipeline.
type Ingestor interface {
	// RegisterUpload stores the raw bytes of an uploaded file and
	// creates a Document in the uploaded state. It does not process
	// the document; call Ingest for that.
	RegisterUpload(ctx context.Context, ownerID, filename string, data []byte) (*domain.Document, error)

	// Ingest extracts, chunks, embeds and persists a document's
	// passages, replacing any prior chunk set. The returned result
	// reports the terminal status of this attempt.
	Ingest(ctx context.Context, documentID string) (*IngestResult, error)
}

// IngestResult reports the outcome of an ingestion attempt.
type IngestResult struct {
	// Status is the document's terminal lifecycle state for this run.
	Status domain.DocumentStatus

	// ChunkCount is the number of chunks persisted. Zero unless
	// Status is ready.
	ChunkCount int
}
