package waqfrag

import "github.com/awqaf-cloud/waqfrag/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound              = domain.ErrNotFound
	ErrRepositoryUnavailable = domain.ErrRepositoryUnavailable
	ErrEmbeddingProvider     = domain.ErrEmbeddingProvider
	ErrGenerationFailure     = domain.ErrGenerationFailure
	ErrDimensionMismatch     = domain.ErrDimensionMismatch
)
