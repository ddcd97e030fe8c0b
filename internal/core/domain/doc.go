// Package domain defines the core business entities for Docsage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document with its ingestion lifecycle status
//   - Chunk: An embedded, retrievable passage of a document
//   - Conversation / Message: A chat thread and its turns
//   - Match: A retrieved chunk with its similarity score
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
