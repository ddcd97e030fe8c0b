package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or missing required input.
	// Never retried; surfaced verbatim to the caller.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates an attempt to read data outside the
	// requester's scope. Always rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured (missing token or endpoint). Fix-and-redeploy class.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the generation service is not
	// configured. Fix-and-redeploy class.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrExtractionUnavailable indicates the text extraction service is
	// not configured for a format that needs it.
	ErrExtractionUnavailable = errors.New("extraction service unavailable")

	// ErrUnsupportedType indicates a file extension no extractor handles.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// ServiceError is a failure from a reachable external dependency.
// It carries the upstream status and detail so callers can decide
// whether to retry.
type ServiceError struct {
	// Service names the dependency ("embedding", "generation", "extraction").
	Service string

	// StatusCode is the upstream HTTP status, zero if not applicable.
	StatusCode int

	// Detail is the upstream error message.
	Detail string
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s service error (status %d): %s", e.Service, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s service error: %s", e.Service, e.Detail)
}

// FormatError indicates the embedding service returned a tensor shape
// that does not match any supported layout. Not transient: the response
// is incompatible, so callers must not retry.
type FormatError struct {
	// Shape describes the unexpected structure that was received.
	Shape string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected embedding tensor shape: %s", e.Shape)
}

// DimensionError indicates a normalized embedding's length differs from
// the service's declared dimension. Never silently truncated or padded.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: want %d, got %d", e.Want, e.Got)
}
