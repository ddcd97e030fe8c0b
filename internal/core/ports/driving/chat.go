package driving

import (
	"context"

	"github.com/docsage/docsage/internal/core/domain"
)

// Chat answers a single conversation turn grounded in the owner's
// ingested documents.
type Chat interface {
	// Answer embeds the latest user message, retrieves the owner's most
	// similar chunks, and asks the generation service for a grounded
	// reply. The full message history is forwarded to the model so
	// multi-turn context is retained.
	//
	// An empty retrieval result is not an error: the answer falls back
	// to general knowledge and MatchCount is zero. Embedding, retrieval
	// or generation failures abort the turn.
	Answer(ctx context.Context, req AnswerRequest) (*Answer, error)
}

// AnswerRequest carries one conversation turn.
type AnswerRequest struct {
	// OwnerID is the authenticated requester. Retrieval is scoped to
	// this owner's documents.
	OwnerID string

	// Messages is the turn history, oldest first. The last message must
	// have the user role and non-empty content.
	Messages []domain.Message

	// DocumentID optionally narrows retrieval to a single document.
	DocumentID string
}

// Answer is the outcome of a successful turn.
type Answer struct {
	// Text is the generated reply.
	Text string

	// MatchCount is how many chunks grounded the reply. Zero means the
	// model answered from general knowledge.
	MatchCount int
}
