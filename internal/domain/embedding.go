package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

// EmbeddingResult holds a generated vector with token accounting from the
// provider response.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder turns text into a fixed-dimensionality vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// ParseEmbedding decodes the serialized embedding carried on a knowledge
// document. Returns an error for empty or malformed payloads; callers decide
// whether that excludes the document or aborts the operation.
func ParseEmbedding(raw string) ([]float32, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty embedding: %w", ErrEmbeddingNotSet)
	}
	var vec []float32
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		return nil, fmt.Errorf("parse embedding: %w", err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("empty embedding vector: %w", ErrEmbeddingNotSet)
	}
	return vec, nil
}
