package domain

// DocumentStatus is the ingestion lifecycle state of a document.
// The ingestion pipeline is the only writer. Transitions move from
// StatusUploaded (or StatusReindexing on reprocessing) to exactly one
// terminal state per ingestion attempt.
type DocumentStatus string

// Document lifecycle states.
const (
	// StatusUploaded means the raw file is stored but not yet processed.
	StatusUploaded DocumentStatus = "uploaded"

	// StatusReindexing means an ingestion run is replacing the chunk
	// set. Retrieval excludes documents in this state so a reader never
	// observes a partial mix of old and new chunks.
	StatusReindexing DocumentStatus = "reindexing"

	// StatusReady means chunking and embedding completed and the chunk
	// set is retrievable. The only terminal success state.
	StatusReady DocumentStatus = "ready"

	// StatusEmptyText means extraction produced no usable text
	// (a scanned PDF, for example). Not a code error.
	StatusEmptyText DocumentStatus = "empty_text"

	// StatusChunkInsertError means persisting the chunk set failed.
	StatusChunkInsertError DocumentStatus = "chunk_insert_error"

	// StatusError means embedding or another pipeline step failed;
	// Document.LastError records where it stopped.
	StatusError DocumentStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusUploaded, StatusReindexing, StatusReady,
		StatusEmptyText, StatusChunkInsertError, StatusError:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status ends an ingestion attempt.
func (s DocumentStatus) IsTerminal() bool {
	switch s {
	case StatusReady, StatusEmptyText, StatusChunkInsertError, StatusError:
		return true
	default:
		return false
	}
}

// Retrievable returns true if chunks of a document in this state may be
// returned by similarity search.
func (s DocumentStatus) Retrievable() bool {
	return s == StatusReady
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}
