package cli

import (
	"context"
	"time"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driving"
)

// Stub services for command tests. The stubs live behind the same
// package variables main injects through SetServices.

type stubIngestor struct {
	registerErr error
	ingestErr   error
	result      *driving.IngestResult
	uploads     []string
}

func (s *stubIngestor) RegisterUpload(_ context.Context, ownerID, filename string, _ []byte) (*domain.Document, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.uploads = append(s.uploads, filename)
	return &domain.Document{ID: "doc-1", OwnerID: ownerID, Filename: filename, Status: domain.StatusUploaded}, nil
}

func (s *stubIngestor) Ingest(context.Context, string) (*driving.IngestResult, error) {
	if s.ingestErr != nil {
		return s.result, s.ingestErr
	}
	if s.result != nil {
		return s.result, nil
	}
	return &driving.IngestResult{Status: domain.StatusReady, ChunkCount: 4}, nil
}

type stubChat struct {
	answer *driving.Answer
	err    error
	last   driving.AnswerRequest
}

func (s *stubChat) Answer(_ context.Context, req driving.AnswerRequest) (*driving.Answer, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

type stubConvManager struct {
	convs    []domain.Conversation
	messages []domain.Message
	renames  [][2]string
	err      error
}

func (s *stubConvManager) Create(_ context.Context, ownerID, _ string) (*domain.Conversation, error) {
	return &domain.Conversation{ID: "conv-new", OwnerID: ownerID}, s.err
}

func (s *stubConvManager) List(context.Context, string) ([]domain.Conversation, error) {
	return s.convs, s.err
}

func (s *stubConvManager) Rename(_ context.Context, _, conversationID, title string) error {
	s.renames = append(s.renames, [2]string{conversationID, title})
	return s.err
}

func (s *stubConvManager) Messages(context.Context, string, string) ([]domain.Message, error) {
	return s.messages, s.err
}

func (s *stubConvManager) AppendTurn(context.Context, string, string, string, string) error {
	return s.err
}

type stubCatalog struct {
	docs []domain.Document
	err  error
}

func (s *stubCatalog) List(context.Context, string) ([]domain.Document, error) {
	return s.docs, s.err
}

func (s *stubCatalog) Get(_ context.Context, _, documentID string) (*domain.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.docs {
		if s.docs[i].ID == documentID {
			return &s.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// setupTestServices installs stub services and returns a cleanup that
// restores whatever was there before.
func setupTestServices() func() {
	oldIngestor := ingestor
	oldChat := chatService
	oldConvs := convManager
	oldDocs := documentService

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	ingestor = &stubIngestor{}
	chatService = &stubChat{answer: &driving.Answer{Text: "a grounded answer", MatchCount: 2}}
	convManager = &stubConvManager{
		convs: []domain.Conversation{
			{ID: "conv-1", OwnerID: "default", Title: "First chat", CreatedAt: now},
		},
		messages: []domain.Message{
			{Role: domain.RoleUser, Content: "hello"},
			{Role: domain.RoleAssistant, Content: "hi there"},
		},
	}
	documentService = &stubCatalog{
		docs: []domain.Document{
			{ID: "doc-1", OwnerID: "default", Filename: "notes.md", Status: domain.StatusReady, ChunkCount: 4, CreatedAt: now},
			{ID: "doc-2", OwnerID: "default", Filename: "broken.txt", Status: domain.StatusError, LastError: "embedding failed at chunk 3: timeout", CreatedAt: now},
		},
	}

	return func() {
		ingestor = oldIngestor
		chatService = oldChat
		convManager = oldConvs
		documentService = oldDocs
	}
}
