package domain

import "time"

// Document represents an uploaded document and its ingestion lifecycle.
// Documents are created when a user uploads a file and are mutated only
// by the ingestion pipeline.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID identifies the user the document belongs to.
	// Every chunk of this document is scoped to this owner.
	OwnerID string

	// Filename is the original name of the uploaded file.
	Filename string

	// StoragePath locates the raw bytes in the object store.
	StoragePath string

	// Status is the current ingestion lifecycle state.
	Status DocumentStatus

	// ChunkCount is the number of chunks produced by the last
	// successful ingestion. Zero until the document is ready.
	ChunkCount int

	// LastError holds diagnostic detail for error statuses, such as
	// the index of the first chunk whose embedding failed.
	LastError string

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time

	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time
}

// Ext returns the lowercase file extension of the document's filename,
// without the leading dot. Empty if the filename has no extension.
func (d *Document) Ext() string {
	name := d.Filename
	for i := len(name) - 1; i >= 0; i-- {
		switch name[i] {
		case '.':
			return lower(name[i+1:])
		case '/', '\\':
			return ""
		}
	}
	return ""
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Chunk represents an embedded, retrievable passage of a document.
// Chunks for a document are replaced as a whole set on every ingestion;
// indexes are contiguous from zero and unique within the document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Index is the zero-based position within the document's chunk set.
	// It reflects original-text order.
	Index int

	// Content is the passage text, a window of the normalized
	// document text.
	Content string

	// Embedding is the fixed-length vector representation. Nil until
	// the chunk has been embedded; when present its length equals the
	// embedding service's declared dimension.
	Embedding []float32
}

// Match is a retrieved chunk together with its similarity score.
type Match struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity between the query vector and the
	// chunk's embedding.
	Score float64
}

// RetrievalScope restricts a similarity search to one owner's data,
// optionally narrowed to a single document.
type RetrievalScope struct {
	// OwnerID is the requesting user. Required: retrieval must never
	// cross owner boundaries.
	OwnerID string

	// DocumentID optionally restricts matches to one document.
	DocumentID string
}
