package retrieval

import (
	"context"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	knowledge    []domain.KnowledgeDocument
	cases        []domain.CaseRecord
	instructions []domain.InstructionRecord

	knowledgeErr error
	lastFilter   KnowledgeFilter
}

func (m *mockRepo) ListKnowledge(
	_ context.Context, f KnowledgeFilter,
) ([]domain.KnowledgeDocument, error) {
	m.lastFilter = f
	if m.knowledgeErr != nil {
		return nil, m.knowledgeErr
	}
	var out []domain.KnowledgeDocument
	for _, d := range m.knowledge {
		if f.ActiveOnly && !d.IsActive {
			continue
		}
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *mockRepo) ListCases(_ context.Context, activeOnly bool) ([]domain.CaseRecord, error) {
	var out []domain.CaseRecord
	for _, c := range m.cases {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepo) ListInstructions(
	_ context.Context, activeOnly bool,
) ([]domain.InstructionRecord, error) {
	var out []domain.InstructionRecord
	for _, r := range m.instructions {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type mockEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vector, TotalTokens: 3}, nil
}
