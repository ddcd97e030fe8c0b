package driven

import (
	"context"

	"github.com/docsage/docsage/internal/core/domain"
)

// ConversationStore persists conversations and their messages.
type ConversationStore interface {
	// SaveConversation stores or updates a conversation.
	SaveConversation(ctx context.Context, conv *domain.Conversation) error

	// GetConversation retrieves a conversation by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)

	// ListConversations returns an owner's conversations, newest first.
	ListConversations(ctx context.Context, ownerID string) ([]domain.Conversation, error)

	// SaveMessage appends a message to a conversation.
	SaveMessage(ctx context.Context, msg *domain.Message) error

	// ListMessages returns a conversation's messages ordered by
	// creation time ascending.
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
}
