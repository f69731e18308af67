package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

func knowledgeDoc(id, title string, hits int) domain.KnowledgeDocument {
	// hits controls the lexical score: each occurrence of "endowment" in the
	// body adds a content point.
	body := strings.Repeat("endowment ", hits) + strings.Repeat("filler ", 40)
	return domain.KnowledgeDocument{
		ID:       id,
		Title:    title,
		Content:  body,
		IsActive: true,
	}
}

func TestRetrieveDocuments_KeywordPath(t *testing.T) {
	repo := &mockRepo{knowledge: []domain.KnowledgeDocument{
		knowledgeDoc("low", "first note", 1),
		knowledgeDoc("high", "second note", 5),
		knowledgeDoc("mid", "third note", 3),
		knowledgeDoc("zero", "fourth note", 0),
	}}
	emb := &mockEmbedder{}
	svc := New(repo, emb, zap.NewNop())

	results, err := svc.RetrieveDocuments(context.Background(), "endowment", DocumentOptions{
		Limit: 2, MinScore: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if emb.calls != 0 {
		t.Error("embedder must not be called when the corpus has no embeddings")
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (limit)", len(results))
	}
	if results[0].Document.ID != "high" || results[1].Document.ID != "mid" {
		t.Errorf("order = [%s %s], want [high mid]", results[0].Document.ID, results[1].Document.ID)
	}
	for _, r := range results {
		if r.RelevanceScore < 2 {
			t.Errorf("result %s scored %v, below min score", r.Document.ID, r.RelevanceScore)
		}
	}
	if !repo.lastFilter.ActiveOnly {
		t.Error("retrieval must request active documents only")
	}
}

func TestRetrieveDocuments_SemanticDisabled(t *testing.T) {
	doc := knowledgeDoc("a", "note", 2)
	doc.Embedding = "[1,0]"
	repo := &mockRepo{knowledge: []domain.KnowledgeDocument{doc}}
	emb := &mockEmbedder{vector: []float32{1, 0}}
	svc := New(repo, emb, zap.NewNop())

	_, err := svc.RetrieveDocuments(context.Background(), "endowment", DocumentOptions{
		DisableSemantic: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.calls != 0 {
		t.Error("embedder must not be called when semantic search is disabled")
	}
}

func TestRetrieveDocuments_HybridOrdering(t *testing.T) {
	// Two documents with identical keyword scores; embedding similarity
	// alone decides the order under the 0.7 blend.
	near := knowledgeDoc("near", "note one", 2)
	near.Embedding = "[1,0]"
	far := knowledgeDoc("far", "note two", 2)
	far.Embedding = "[0,1]"

	repo := &mockRepo{knowledge: []domain.KnowledgeDocument{far, near}}
	emb := &mockEmbedder{vector: []float32{1, 0}}
	svc := New(repo, emb, zap.NewNop())

	results, err := svc.RetrieveDocuments(context.Background(), "endowment", DocumentOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.calls != 1 {
		t.Fatalf("embedder called %d times, want 1", emb.calls)
	}
	if len(results) == 0 || results[0].Document.ID != "near" {
		t.Fatalf("results = %v, want semantically near document first", results)
	}
	// Fused scores are rescaled into the lexical band: a perfect semantic
	// match contributes 0.7*100 = 70 points.
	if results[0].RelevanceScore < 70 {
		t.Errorf("rescaled score = %v, want >= 70", results[0].RelevanceScore)
	}
}

func TestRetrieveDocuments_FallbackOnEmbedderFailure(t *testing.T) {
	doc := knowledgeDoc("a", "note", 3)
	doc.Embedding = "[1,0]"
	repo := &mockRepo{knowledge: []domain.KnowledgeDocument{doc}}
	emb := &mockEmbedder{err: errors.New("provider down")}
	svc := New(repo, emb, zap.NewNop())

	results, err := svc.RetrieveDocuments(context.Background(), "endowment", DocumentOptions{})
	if err != nil {
		t.Fatalf("fallback must absorb the embedder failure, got %v", err)
	}
	if len(results) == 0 {
		t.Fatal("keyword fallback should still return results")
	}
	if results[0].Document.ID != "a" {
		t.Errorf("fallback result = %s, want a", results[0].Document.ID)
	}
}

func TestRetrieveDocuments_RepositoryFailurePropagates(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &mockRepo{knowledgeErr: repoErr}
	svc := New(repo, &mockEmbedder{}, zap.NewNop())

	_, err := svc.RetrieveDocuments(context.Background(), "endowment", DocumentOptions{})
	if !errors.Is(err, repoErr) {
		t.Fatalf("error = %v, want wrapped repository error", err)
	}
}

func TestRetrieveDocuments_Defaults(t *testing.T) {
	var docs []domain.KnowledgeDocument
	for i := 0; i < 9; i++ {
		docs = append(docs, knowledgeDoc(string(rune('a'+i)), "note", 2))
	}
	repo := &mockRepo{knowledge: docs}
	svc := New(repo, nil, zap.NewNop())

	results, err := svc.RetrieveDocuments(context.Background(), "endowment", DocumentOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("got %d results, want default limit 5", len(results))
	}
}

func TestRetrieveItems(t *testing.T) {
	repo := &mockRepo{
		knowledge: []domain.KnowledgeDocument{knowledgeDoc("k1", "endowment register", 4)},
		cases: []domain.CaseRecord{
			{ID: "c1", Title: "endowment ownership case", Description: "endowment dispute", CaseNumber: "12/2020", IsActive: true},
			{ID: "c2", Title: "unrelated", Description: "nothing here", CaseNumber: "13/2020", IsActive: true},
			{ID: "c3", Title: "endowment but inactive", Description: "endowment", CaseNumber: "14/2020"},
		},
		instructions: []domain.InstructionRecord{
			{ID: "i1", Title: "endowment leasing circular", Content: "endowment rules", InstructionNumber: "3/2021", IsActive: true},
		},
	}
	svc := New(repo, nil, zap.NewNop())

	items, err := svc.RetrieveItems(context.Background(), "endowment", ItemOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kinds := map[domain.SourceKind]int{}
	for _, it := range items {
		kinds[it.Kind]++
		if it.ItemID() == "c2" {
			t.Error("non-matching case should be filtered by min score")
		}
		if it.ItemID() == "c3" {
			t.Error("inactive case must be excluded")
		}
	}
	if kinds[domain.SourceKnowledge] != 1 || kinds[domain.SourceCase] != 1 || kinds[domain.SourceInstruction] != 1 {
		t.Errorf("kind distribution = %v, want one of each", kinds)
	}
	for i := 1; i < len(items); i++ {
		if items[i].RelevanceScore > items[i-1].RelevanceScore {
			t.Fatal("merged items not sorted by score descending")
		}
	}
}

func TestRetrieveItems_SourceSubset(t *testing.T) {
	repo := &mockRepo{
		knowledge: []domain.KnowledgeDocument{knowledgeDoc("k1", "endowment register", 4)},
		cases: []domain.CaseRecord{
			{ID: "c1", Title: "endowment case", Description: "endowment", CaseNumber: "1/1", IsActive: true},
		},
	}
	svc := New(repo, nil, zap.NewNop())

	items, err := svc.RetrieveItems(context.Background(), "endowment", ItemOptions{
		Sources: []domain.SourceKind{domain.SourceCase},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Kind != domain.SourceCase {
		t.Fatalf("items = %v, want only the case result", items)
	}
}
