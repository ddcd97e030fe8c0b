package services

import (
	"context"
	"fmt"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
	"github.com/docsage/docsage/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentCatalog = (*DocumentService)(nil)

// DocumentService exposes an owner's documents for inspection.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a document catalog service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns all of an owner's documents.
func (s *DocumentService) List(ctx context.Context, ownerID string) ([]domain.Document, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}
	return s.docStore.ListDocuments(ctx, ownerID)
}

// Get returns one document, restricted to its owner.
func (s *DocumentService) Get(ctx context.Context, ownerID, documentID string) (*domain.Document, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != ownerID {
		// Do not leak whether the document exists.
		return nil, domain.ErrUnauthorized
	}
	return doc, nil
}
