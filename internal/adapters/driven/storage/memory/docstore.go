// Package memory provides in-memory storage adapters, used in tests and
// for ephemeral setups.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
	"github.com/docsage/docsage/internal/vectormath"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.DocumentStore  = (*DocumentStore)(nil)
	_ driven.VectorSearcher = (*DocumentStore)(nil)
)

// DocumentStore is an in-memory implementation of driven.DocumentStore
// and driven.VectorSearcher.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// UpdateStatus sets a document's lifecycle status and diagnostic detail.
func (s *DocumentStore) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, lastError string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	doc.LastError = lastError
	doc.UpdatedAt = time.Now()
	s.documents[id] = doc
	return nil
}

// ReplaceChunks atomically swaps the document's chunk set and marks it
// ready. The store lock makes the whole replacement one boundary: a
// concurrent search sees the old set or the new set, never a mix.
func (s *DocumentStore) ReplaceChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return domain.ErrNotFound
	}

	replaced := make([]domain.Chunk, len(chunks))
	copy(replaced, chunks)
	s.chunks[documentID] = replaced

	doc.Status = domain.StatusReady
	doc.ChunkCount = len(replaced)
	doc.LastError = ""
	doc.UpdatedAt = time.Now()
	s.documents[documentID] = doc
	return nil
}

// GetChunks retrieves all chunks for a document in index order.
func (s *DocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, len(s.chunks[documentID]))
	copy(chunks, s.chunks[documentID])
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	return chunks, nil
}

// ListDocuments returns all documents belonging to an owner.
func (s *DocumentStore) ListDocuments(_ context.Context, ownerID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range s.documents {
		if doc.OwnerID == ownerID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	return docs, nil
}

// SearchChunks returns the k most similar chunks within the scope.
// Candidates are restricted to the owner's retrievable documents before
// similarity is computed.
func (s *DocumentStore) SearchChunks(_ context.Context, query []float32, scope domain.RetrievalScope, k int) ([]domain.Match, error) {
	if scope.OwnerID == "" {
		return nil, domain.ErrUnauthorized
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.Match
	for docID, chunks := range s.chunks {
		doc, ok := s.documents[docID]
		if !ok || doc.OwnerID != scope.OwnerID || !doc.Status.Retrievable() {
			continue
		}
		if scope.DocumentID != "" && docID != scope.DocumentID {
			continue
		}
		for _, chunk := range chunks {
			if chunk.Embedding == nil {
				continue
			}
			matches = append(matches, domain.Match{
				Chunk: chunk,
				Score: vectormath.Cosine(query, chunk.Embedding),
			})
		}
	}

	sortMatches(matches)
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// sortMatches orders by score descending, ties by ascending chunk index
// then document ID for determinism.
func sortMatches(matches []domain.Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Chunk.Index != b.Chunk.Index {
			return a.Chunk.Index < b.Chunk.Index
		}
		return a.Chunk.DocumentID < b.Chunk.DocumentID
	})
}
