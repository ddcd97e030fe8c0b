package domain

import "time"

// Role identifies the author of a chat message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Conversation is a chat thread owned by a single user.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string

	// OwnerID identifies the user the conversation belongs to.
	OwnerID string

	// Title is the display name, suggested from the first message or
	// set by the user.
	Title string

	// CreatedAt is when the conversation was started.
	CreatedAt time.Time
}

// Message is a single turn in a conversation. CreatedAt orders the
// turn history.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// ConversationID links to the owning conversation.
	ConversationID string

	// Role is who authored the message.
	Role Role

	// Content is the message text.
	Content string

	// CreatedAt orders messages within a conversation.
	CreatedAt time.Time
}
