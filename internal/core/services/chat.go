package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
	"github.com/docsage/docsage/internal/core/ports/driving"
	"github.com/docsage/docsage/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.Chat = (*ChatService)(nil)

// Default generation parameters for answering.
const (
	DefaultAnswerTemperature = 0.3
	DefaultAnswerMaxTokens   = 1024
)

// defaultChatSystemPrompt is used when no prompt store is configured.
const defaultChatSystemPrompt = `You are a helpful assistant that answers questions about the user's uploaded documents.

Use the document excerpts below to answer. Prefer information from the excerpts; when they do not cover the question, you may answer from general knowledge but say so. Never reveal personal or confidential data that is not part of the excerpts. Do not ask the user for passwords or other sensitive data; if they share any, ask them to delete it from the conversation.

%s`

// ChatService answers conversation turns grounded in retrieved chunks.
//
// A turn moves through fixed stages: embed the question, retrieve the
// owner's most similar chunks, assemble the context block, generate.
// Any stage failure aborts the turn before generation is attempted, so
// a user never gets an answer that silently ignored their documents.
type ChatService struct {
	embedder    driven.EmbeddingService
	searcher    driven.VectorSearcher
	generator   driven.GenerationService
	promptStore driven.PromptStore
	topK        int
	temperature float64
	maxTokens   int
}

// ChatOption configures the chat service.
type ChatOption func(*ChatService)

// WithTopK overrides how many chunks ground an answer.
func WithTopK(k int) ChatOption {
	return func(s *ChatService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithAnswerTemperature overrides the generation temperature.
func WithAnswerTemperature(t float64) ChatOption {
	return func(s *ChatService) { s.temperature = t }
}

// NewChatService creates a chat service.
func NewChatService(
	embedder driven.EmbeddingService,
	searcher driven.VectorSearcher,
	generator driven.GenerationService,
	opts ...ChatOption,
) *ChatService {
	s := &ChatService{
		embedder:    embedder,
		searcher:    searcher,
		generator:   generator,
		topK:        DefaultTopK,
		temperature: DefaultAnswerTemperature,
		maxTokens:   DefaultAnswerMaxTokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *ChatService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Answer runs one grounded conversation turn.
func (s *ChatService) Answer(ctx context.Context, req driving.AnswerRequest) (*driving.Answer, error) {
	logger.Section("Chat Turn")

	question, err := validateTurn(req)
	if err != nil {
		return nil, err
	}
	logger.Debug("Owner: %s, history: %d messages", req.OwnerID, len(req.Messages))

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	scope := domain.RetrievalScope{OwnerID: req.OwnerID, DocumentID: req.DocumentID}
	matches, err := s.searcher.SearchChunks(ctx, queryVec, scope, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(matches))

	system := fmt.Sprintf(s.systemTemplate(), assembleContext(matches, s.topK))

	history := make([]driven.ChatMessage, 0, len(req.Messages)+1)
	history = append(history, driven.ChatMessage{Role: "system", Content: system})
	for _, msg := range req.Messages {
		history = append(history, driven.ChatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	text, err := s.generator.Chat(ctx, history, driven.ChatOptions{
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &driving.Answer{Text: text, MatchCount: len(matches)}, nil
}

// systemTemplate loads the chat system prompt, falling back to the
// embedded default when no store is configured or loading fails.
func (s *ChatService) systemTemplate() string {
	if s.promptStore == nil {
		return defaultChatSystemPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptChatSystem)
	if err != nil || !strings.Contains(prompt, "%s") {
		return defaultChatSystemPrompt
	}
	return prompt
}

// validateTurn checks the request and returns the question text, which
// must be the final message, authored by the user, with content.
func validateTurn(req driving.AnswerRequest) (string, error) {
	if req.OwnerID == "" {
		return "", fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("empty message history: %w", domain.ErrInvalidInput)
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Role != domain.RoleUser {
		return "", fmt.Errorf("last message must be from the user: %w", domain.ErrInvalidInput)
	}
	question := strings.TrimSpace(last.Content)
	if question == "" {
		return "", fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}
	return question, nil
}
