package driving

import (
	"context"

	"github.com/docsage/docsage/internal/core/domain"
)

// ConversationManager maintains chat threads around the core Answer
// operation: it persists turns and owns the conversation list.
type ConversationManager interface {
	// Create starts a new conversation for an owner. When firstMessage
	// is non-empty a title is suggested from it; otherwise a default
	// title is used.
	Create(ctx context.Context, ownerID, firstMessage string) (*domain.Conversation, error)

	// List returns an owner's conversations, newest first.
	List(ctx context.Context, ownerID string) ([]domain.Conversation, error)

	// Rename sets a conversation's title. Only the owner may rename.
	Rename(ctx context.Context, ownerID, conversationID, title string) error

	// Messages returns a conversation's history in creation order.
	// Only the owner may read it.
	Messages(ctx context.Context, ownerID, conversationID string) ([]domain.Message, error)

	// AppendTurn durably records a completed turn: the user message and
	// the assistant's answer, in that order.
	AppendTurn(ctx context.Context, ownerID, conversationID, userText, answerText string) error
}
