// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document and chunk persistence
//   - VectorSearcher: Owner-scoped similarity search over stored chunks
//   - ConversationStore: Conversation and message persistence
//   - ObjectStore: Raw uploaded bytes
//   - EmbeddingService: Generates vector embeddings
//   - GenerationService: Produces grounded chat answers
//   - ExtractorRegistry: Selects a text extractor by file extension
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
