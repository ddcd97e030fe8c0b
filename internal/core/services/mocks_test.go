package services

import (
	"context"
	"sort"
	"sync"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
)

// mockEmbedder implements driven.EmbeddingService for testing.
type mockEmbedder struct {
	mu         sync.Mutex
	embedFn    func(text string) ([]float32, error)
	batchFn    func(texts []string) ([][]float32, error)
	embedCalls []string
	batchCalls [][]string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls = append(m.embedCalls, text)
	m.mu.Unlock()
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls = append(m.batchCalls, texts)
	m.mu.Unlock()
	if m.batchFn != nil {
		return m.batchFn(texts)
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 3 }
func (m *mockEmbedder) ModelName() string            { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockGenerator implements driven.GenerationService for testing.
type mockGenerator struct {
	mu            sync.Mutex
	chatFn        func(messages []driven.ChatMessage, opts driven.ChatOptions) (string, error)
	generateFn    func(prompt string, opts driven.GenerateOptions) (string, error)
	chatCalls     [][]driven.ChatMessage
	generateCalls []string
}

func (m *mockGenerator) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, messages)
	m.mu.Unlock()
	if m.chatFn != nil {
		return m.chatFn(messages, opts)
	}
	return "mock answer", nil
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.generateCalls = append(m.generateCalls, prompt)
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(prompt, opts)
	}
	return "mock completion", nil
}

func (m *mockGenerator) ModelName() string            { return "mock-generator" }
func (m *mockGenerator) Ping(_ context.Context) error { return nil }
func (m *mockGenerator) Close() error                 { return nil }

// mockSearcher implements driven.VectorSearcher for testing.
type mockSearcher struct {
	searchFn func(query []float32, scope domain.RetrievalScope, k int) ([]domain.Match, error)
	calls    []domain.RetrievalScope
}

func (m *mockSearcher) SearchChunks(_ context.Context, query []float32, scope domain.RetrievalScope, k int) ([]domain.Match, error) {
	m.calls = append(m.calls, scope)
	if m.searchFn != nil {
		return m.searchFn(query, scope, k)
	}
	return nil, nil
}

// mockDocStore implements driven.DocumentStore over maps.
type mockDocStore struct {
	mu        sync.Mutex
	docs      map[string]*domain.Document
	chunks    map[string][]domain.Chunk
	replaceFn func(documentID string, chunks []domain.Chunk) error
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{
		docs:   make(map[string]*domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

func (m *mockDocStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *doc
	m.docs[doc.ID] = &copied
	return nil
}

func (m *mockDocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (m *mockDocStore) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	doc.LastError = lastError
	return nil
}

func (m *mockDocStore) ReplaceChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	if m.replaceFn != nil {
		if err := m.replaceFn(documentID, chunks); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	m.chunks[documentID] = append([]domain.Chunk(nil), chunks...)
	doc.Status = domain.StatusReady
	doc.ChunkCount = len(chunks)
	doc.LastError = ""
	return nil
}

func (m *mockDocStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chunks := append([]domain.Chunk(nil), m.chunks[documentID]...)
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	return chunks, nil
}

func (m *mockDocStore) ListDocuments(_ context.Context, ownerID string) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Document
	for _, doc := range m.docs {
		if doc.OwnerID == ownerID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

// mockObjectStore implements driven.ObjectStore over a map.
type mockObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{objects: make(map[string][]byte)}
}

func (m *mockObjectStore) Put(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = append([]byte(nil), data...)
	return nil
}

func (m *mockObjectStore) Get(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *mockObjectStore) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}

// mockExtractor implements driven.TextExtractor.
type mockExtractor struct {
	exts      []string
	extractFn func(data []byte, ext string) (string, error)
}

func (m *mockExtractor) Extensions() []string { return m.exts }

func (m *mockExtractor) Extract(_ context.Context, data []byte, ext string) (string, error) {
	if m.extractFn != nil {
		return m.extractFn(data, ext)
	}
	return string(data), nil
}

// mockRegistry implements driven.ExtractorRegistry.
type mockRegistry struct {
	extractors map[string]driven.TextExtractor
}

func newMockRegistry(extractors ...driven.TextExtractor) *mockRegistry {
	r := &mockRegistry{extractors: make(map[string]driven.TextExtractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.extractors[ext] = e
		}
	}
	return r
}

func (m *mockRegistry) ForExtension(ext string) (driven.TextExtractor, bool) {
	e, ok := m.extractors[ext]
	return e, ok
}

func (m *mockRegistry) SupportedExtensions() []string {
	var exts []string
	for ext := range m.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// mockConvStore implements driven.ConversationStore over maps.
type mockConvStore struct {
	mu            sync.Mutex
	conversations map[string]*domain.Conversation
	messages      map[string][]domain.Message
}

func newMockConvStore() *mockConvStore {
	return &mockConvStore{
		conversations: make(map[string]*domain.Conversation),
		messages:      make(map[string][]domain.Message),
	}
}

func (m *mockConvStore) SaveConversation(_ context.Context, conv *domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *conv
	m.conversations[conv.ID] = &copied
	return nil
}

func (m *mockConvStore) GetConversation(_ context.Context, id string) (*domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *conv
	return &copied, nil
}

func (m *mockConvStore) ListConversations(_ context.Context, ownerID string) ([]domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Conversation
	for _, conv := range m.conversations {
		if conv.OwnerID == ownerID {
			out = append(out, *conv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockConvStore) SaveMessage(_ context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ConversationID] = append(m.messages[msg.ConversationID], *msg)
	return nil
}

func (m *mockConvStore) ListMessages(_ context.Context, conversationID string) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := append([]domain.Message(nil), m.messages[conversationID]...)
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	return msgs, nil
}
