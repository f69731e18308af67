package domain

import "errors"

var (
	// ErrDimensionMismatch signals cosine similarity over vectors of unequal length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrEmbeddingNotSet signals a document without a usable embedding.
	ErrEmbeddingNotSet = errors.New("embedding not set")
	// ErrRepositoryUnavailable signals that the document store is unreachable.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
	// ErrGenerationFailure signals a failed or unusable completion response.
	ErrGenerationFailure = errors.New("generation failure")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
