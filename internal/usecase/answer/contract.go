package answer

import (
	"context"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
	"github.com/awqaf-cloud/waqfrag/internal/usecase/retrieval"
)

// Retriever is the consumer interface over the retrieval orchestrator.
type Retriever interface {
	RetrieveDocuments(
		ctx context.Context, query string, opts retrieval.DocumentOptions,
	) ([]domain.ScoredDocument, error)
}

// InteractionLog records rated exchanges for the feedback analytics pass.
type InteractionLog interface {
	Append(ctx context.Context, interaction domain.Interaction) error
}
