package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docsage/docsage/internal/chunker"
	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
	"github.com/docsage/docsage/internal/core/ports/driving"
	"github.com/docsage/docsage/internal/logger"
)

// Ensure IngestionPipeline implements the interface.
var _ driving.Ingestor = (*IngestionPipeline)(nil)

// DefaultEmbedBatchSize is how many chunks are embedded per request.
const DefaultEmbedBatchSize = 8

// IngestionPipeline turns uploaded files into retrievable chunk sets:
// extract, normalize, chunk, embed, persist. Each run ends in exactly
// one terminal document status.
type IngestionPipeline struct {
	docStore   driven.DocumentStore
	objects    driven.ObjectStore
	extractors driven.ExtractorRegistry
	embedder   driven.EmbeddingService
	chunker    *chunker.Chunker
	batchSize  int
}

// IngestionOption configures the pipeline.
type IngestionOption func(*IngestionPipeline)

// WithEmbedBatchSize overrides the embedding batch size.
func WithEmbedBatchSize(n int) IngestionOption {
	return func(p *IngestionPipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// NewIngestionPipeline creates an ingestion pipeline.
func NewIngestionPipeline(
	docStore driven.DocumentStore,
	objects driven.ObjectStore,
	extractors driven.ExtractorRegistry,
	embedder driven.EmbeddingService,
	ch *chunker.Chunker,
	opts ...IngestionOption,
) *IngestionPipeline {
	p := &IngestionPipeline{
		docStore:   docStore,
		objects:    objects,
		extractors: extractors,
		embedder:   embedder,
		chunker:    ch,
		batchSize:  DefaultEmbedBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterUpload stores raw file bytes and creates the document record
// in the uploaded state.
func (p *IngestionPipeline) RegisterUpload(ctx context.Context, ownerID, filename string, data []byte) (*domain.Document, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, fmt.Errorf("filename is required: %w", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty: %w", domain.ErrInvalidInput)
	}

	doc := &domain.Document{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Filename: path.Base(filename),
		Status:   domain.StatusUploaded,
	}
	if _, ok := p.extractors.ForExtension(doc.Ext()); !ok {
		return nil, fmt.Errorf("no extractor for %q: %w", doc.Ext(), domain.ErrUnsupportedType)
	}

	// The storage path embeds the document ID, never user input, so
	// two uploads of the same filename cannot collide.
	doc.StoragePath = fmt.Sprintf("%s/%s/%s", ownerID, doc.ID, doc.Filename)

	if err := p.objects.Put(ctx, doc.StoragePath, data); err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}
	if err := p.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	logger.Debug("Registered upload %s (%s, %d bytes)", doc.ID, doc.Filename, len(data))
	return doc, nil
}

// Ingest processes a document end to end, replacing any prior chunk set.
func (p *IngestionPipeline) Ingest(ctx context.Context, documentID string) (*driving.IngestResult, error) {
	logger.Section("Document Ingestion")
	logger.Debug("Document: %s", documentID)

	doc, err := p.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	text, err := p.extractText(ctx, doc)
	if err != nil {
		return p.fail(ctx, doc.ID, domain.StatusError, fmt.Sprintf("extraction failed: %v", err), err)
	}

	text = chunker.Normalize(text)
	if text == "" {
		// Nothing to index (a scanned PDF, say). Not a code error.
		logger.Info("Document %s produced no text", doc.ID)
		if err := p.docStore.UpdateStatus(ctx, doc.ID, domain.StatusEmptyText, ""); err != nil {
			return nil, fmt.Errorf("updating status: %w", err)
		}
		return &driving.IngestResult{Status: domain.StatusEmptyText}, nil
	}

	pieces := p.chunker.Split(text)
	logger.Debug("Split into %d chunks", len(pieces))

	// Mark the old chunk set stale before touching it. Retrieval skips
	// reindexing documents, so readers never see a partial mix.
	if err := p.docStore.UpdateStatus(ctx, doc.ID, domain.StatusReindexing, ""); err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}

	embeddings, failedAt, err := p.embedAll(ctx, pieces)
	if err != nil {
		detail := fmt.Sprintf("embedding failed at chunk %d: %v", failedAt, err)
		return p.fail(ctx, doc.ID, domain.StatusError, detail, err)
	}

	chunks := make([]domain.Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Index:      i,
			Content:    content,
			Embedding:  embeddings[i],
		}
	}

	if err := p.docStore.ReplaceChunks(ctx, doc.ID, chunks); err != nil {
		detail := fmt.Sprintf("persisting chunks: %v", err)
		return p.fail(ctx, doc.ID, domain.StatusChunkInsertError, detail, err)
	}

	logger.Info("Document %s ready with %d chunks", doc.ID, len(chunks))
	return &driving.IngestResult{Status: domain.StatusReady, ChunkCount: len(chunks)}, nil
}

// extractText loads the raw bytes and runs the extractor for the
// document's file type.
func (p *IngestionPipeline) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	ext := doc.Ext()
	extractor, ok := p.extractors.ForExtension(ext)
	if !ok {
		return "", fmt.Errorf("no extractor for %q: %w", ext, domain.ErrUnsupportedType)
	}

	data, err := p.objects.Get(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("loading stored file: %w", err)
	}

	start := time.Now()
	text, err := extractor.Extract(ctx, data, ext)
	if err != nil {
		return "", err
	}
	logger.Debug("Extracted %d characters in %s", len(text), time.Since(start).Round(time.Millisecond))
	return text, nil
}

// embedAll embeds every chunk in order, batched. On a batch failure it
// probes the batch one item at a time so the reported index is the
// first chunk that actually fails, not the start of its batch.
func (p *IngestionPipeline) embedAll(ctx context.Context, pieces []string) ([][]float32, int, error) {
	embeddings := make([][]float32, 0, len(pieces))

	for start := 0; start < len(pieces); start += p.batchSize {
		end := start + p.batchSize
		if end > len(pieces) {
			end = len(pieces)
		}

		batch, err := p.embedder.EmbedBatch(ctx, pieces[start:end])
		if err != nil {
			failedAt, probeErr := p.probeBatch(ctx, pieces[start:end], start)
			if probeErr != nil {
				return nil, failedAt, probeErr
			}
			return nil, start, err
		}

		embeddings = append(embeddings, batch...)
	}

	return embeddings, 0, nil
}

// probeBatch retries a failed batch item by item and reports the index
// of the first failure.
func (p *IngestionPipeline) probeBatch(ctx context.Context, batch []string, offset int) (int, error) {
	for i, piece := range batch {
		if _, err := p.embedder.Embed(ctx, piece); err != nil {
			return offset + i, err
		}
	}
	// Every item succeeded individually; blame the batch boundary.
	return offset, nil
}

// fail records a terminal failure status and returns the result. The
// underlying cause is returned so callers can inspect it; the status
// update is best effort on top of an already-failed run.
func (p *IngestionPipeline) fail(ctx context.Context, docID string, status domain.DocumentStatus, detail string, cause error) (*driving.IngestResult, error) {
	logger.Warn("Ingestion of %s failed: %s", docID, detail)
	if err := p.docStore.UpdateStatus(ctx, docID, status, detail); err != nil {
		logger.Warn("Recording failure status for %s: %v", docID, err)
	}
	return &driving.IngestResult{Status: status}, cause
}
