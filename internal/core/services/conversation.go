package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
	"github.com/docsage/docsage/internal/core/ports/driving"
	"github.com/docsage/docsage/internal/logger"
)

// Ensure ConversationService implements the interface.
var _ driving.ConversationManager = (*ConversationService)(nil)

// DefaultConversationTitle is used when no title can be suggested.
const DefaultConversationTitle = "New conversation"

// defaultTitlePrompt is used when no prompt store is configured.
const defaultTitlePrompt = `Suggest a short title (at most six words) for a conversation that starts with the message below.
Return ONLY the title, nothing else.

Message: %s
Title:`

// titleMaxLen caps stored titles; model output is occasionally chatty.
const titleMaxLen = 80

// ConversationService maintains chat threads: creation with suggested
// titles, history access, and durable turn recording. Access to a
// conversation is restricted to its owner.
type ConversationService struct {
	convStore   driven.ConversationStore
	generator   driven.GenerationService
	promptStore driven.PromptStore
}

// NewConversationService creates a conversation service. The generator
// is optional; without it new conversations get the default title.
func NewConversationService(convStore driven.ConversationStore, generator driven.GenerationService) *ConversationService {
	return &ConversationService{convStore: convStore, generator: generator}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *ConversationService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Create starts a new conversation, suggesting a title from the first
// message when possible.
func (s *ConversationService) Create(ctx context.Context, ownerID, firstMessage string) (*domain.Conversation, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}

	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     s.suggestTitle(ctx, firstMessage),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.convStore.SaveConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("saving conversation: %w", err)
	}
	return conv, nil
}

// List returns an owner's conversations, newest first.
func (s *ConversationService) List(ctx context.Context, ownerID string) ([]domain.Conversation, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}
	return s.convStore.ListConversations(ctx, ownerID)
}

// Rename sets a conversation's title.
func (s *ConversationService) Rename(ctx context.Context, ownerID, conversationID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}

	conv, err := s.ownedConversation(ctx, ownerID, conversationID)
	if err != nil {
		return err
	}

	conv.Title = title
	if err := s.convStore.SaveConversation(ctx, conv); err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}
	return nil
}

// Messages returns a conversation's history in creation order.
func (s *ConversationService) Messages(ctx context.Context, ownerID, conversationID string) ([]domain.Message, error) {
	if _, err := s.ownedConversation(ctx, ownerID, conversationID); err != nil {
		return nil, err
	}
	return s.convStore.ListMessages(ctx, conversationID)
}

// AppendTurn records a completed turn: user message, then answer.
func (s *ConversationService) AppendTurn(ctx context.Context, ownerID, conversationID, userText, answerText string) error {
	if _, err := s.ownedConversation(ctx, ownerID, conversationID); err != nil {
		return err
	}

	now := time.Now().UTC()
	userMsg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           domain.RoleUser,
		Content:        userText,
		CreatedAt:      now,
	}
	if err := s.convStore.SaveMessage(ctx, userMsg); err != nil {
		return fmt.Errorf("saving user message: %w", err)
	}

	answerMsg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           domain.RoleAssistant,
		Content:        answerText,
		// Strictly after the user message so history ordering is stable.
		CreatedAt: now.Add(time.Millisecond),
	}
	if err := s.convStore.SaveMessage(ctx, answerMsg); err != nil {
		return fmt.Errorf("saving answer message: %w", err)
	}
	return nil
}

// ownedConversation loads a conversation and verifies ownership.
func (s *ConversationService) ownedConversation(ctx context.Context, ownerID, conversationID string) (*domain.Conversation, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}

	conv, err := s.convStore.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.OwnerID != ownerID {
		// Do not leak whether the conversation exists.
		return nil, domain.ErrUnauthorized
	}
	return conv, nil
}

// suggestTitle asks the generator for a title from the first message.
// Failures fall back to the default title; titling is never worth
// failing conversation creation over.
func (s *ConversationService) suggestTitle(ctx context.Context, firstMessage string) string {
	firstMessage = strings.TrimSpace(firstMessage)
	if firstMessage == "" || s.generator == nil {
		return DefaultConversationTitle
	}

	prompt := fmt.Sprintf(s.titleTemplate(), firstMessage)
	title, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   32,
		Temperature: 0.3,
		StopWords:   []string{"\n"},
	})
	if err != nil {
		logger.Debug("Title suggestion failed: %v", err)
		return DefaultConversationTitle
	}

	title = strings.Trim(strings.TrimSpace(title), `"`)
	if title == "" {
		return DefaultConversationTitle
	}
	// Truncate on a rune boundary so a multibyte character at the cut
	// point is dropped whole, not split into invalid UTF-8.
	if runes := []rune(title); len(runes) > titleMaxLen {
		title = string(runes[:titleMaxLen])
	}
	return title
}

// titleTemplate loads the title prompt, falling back to the embedded
// default.
func (s *ConversationService) titleTemplate() string {
	if s.promptStore == nil {
		return defaultTitlePrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptTitle)
	if err != nil || !strings.Contains(prompt, "%s") {
		return defaultTitlePrompt
	}
	return prompt
}
