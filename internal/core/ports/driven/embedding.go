package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations normalize whatever tensor layout the backing model
// service returns into one fixed-length vector per input, and reject any
// vector whose length differs from Dimensions(). They do not retry;
// callers decide retry policy.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	// The result has one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size declared by the
	// model (e.g. 384). Every returned vector has exactly this length.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
