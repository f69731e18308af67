package retrieval

import (
	"context"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// KnowledgeFilter narrows the knowledge candidate set before scoring.
type KnowledgeFilter struct {
	Category   domain.Category
	ActiveOnly bool
}

// Repository is the consumer interface over the corpus store (ISP).
type Repository interface {
	ListKnowledge(ctx context.Context, f KnowledgeFilter) ([]domain.KnowledgeDocument, error)
	ListCases(ctx context.Context, activeOnly bool) ([]domain.CaseRecord, error)
	ListInstructions(ctx context.Context, activeOnly bool) ([]domain.InstructionRecord, error)
}

// Embedder produces the query vector for the semantic path.
type Embedder = domain.Embedder
