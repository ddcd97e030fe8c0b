package driven

import "context"

// GenerationService produces chat completions from an external language
// model. Failures carry the upstream status and detail; the service never
// falls back to a different model on its own.
type GenerationService interface {
	// Chat conducts a multi-turn conversation. The supplied messages are
	// passed to the model as-is, preserving role and content order.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// Generate produces a completion from a single prompt. Used for
	// auxiliary tasks such as conversation title suggestion.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// GenerateOptions configures single-prompt generation.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
