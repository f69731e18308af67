package semantic

import (
	"errors"
	"math"
	"testing"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.1, 0.2, 0.3, 0.4, 0.5}
		sim, err := CosineSimilarity(v, v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(sim-1) > 1e-9 {
			t.Errorf("similarity = %v, want 1", sim)
		}
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{1, 0, 0}, []float32{0, 1, 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sim != 0 {
			t.Errorf("similarity = %v, want 0", sim)
		}
	})

	t.Run("zero magnitude", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sim != 0 {
			t.Errorf("similarity = %v, want 0 (not NaN)", sim)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2})
		if !errors.Is(err, domain.ErrDimensionMismatch) {
			t.Fatalf("error = %v, want ErrDimensionMismatch", err)
		}
	})
}

func docWithEmbedding(id, embedding string) domain.KnowledgeDocument {
	return domain.KnowledgeDocument{ID: id, Title: "doc " + id, Embedding: embedding, IsActive: true}
}

func TestRank(t *testing.T) {
	query := []float32{0.1, 0.2, 0.3}
	docs := []domain.KnowledgeDocument{
		docWithEmbedding("exact", "[0.1,0.2,0.3]"),
		docWithEmbedding("far", "[0.9,0.1,-0.4]"),
		docWithEmbedding("close", "[0.15,0.25,0.35]"),
		docWithEmbedding("no-embedding", ""),
		docWithEmbedding("garbage", "not json"),
	}

	results, err := Rank(query, docs, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Document.ID != "exact" {
		t.Errorf("top result = %s, want exact", results[0].Document.ID)
	}
	if results[1].Document.ID != "close" {
		t.Errorf("second result = %s, want close", results[1].Document.ID)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results not sorted by similarity descending")
	}
}

func TestRank_DimensionMismatch(t *testing.T) {
	docs := []domain.KnowledgeDocument{docWithEmbedding("bad", "[0.1,0.2]")}
	_, err := Rank([]float32{0.1, 0.2, 0.3}, docs, 5)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestHybridRank_WeightSensitivity(t *testing.T) {
	query := []float32{1, 0, 0}
	semanticWinner := DocumentScore{
		Document:     docWithEmbedding("semantic", "[1,0,0]"),
		KeywordScore: 0.1,
	}
	keywordWinner := DocumentScore{
		Document:     docWithEmbedding("keyword", "[0,1,0]"),
		KeywordScore: 0.9,
	}
	docs := []DocumentScore{keywordWinner, semanticWinner}

	t.Run("semantic-heavy weight", func(t *testing.T) {
		results, err := HybridRank(query, docs, 0.9, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Document.ID != "semantic" {
			t.Errorf("top result = %s, want semantic", results[0].Document.ID)
		}
		// combined = 1*0.9 + 0.1*0.1
		if math.Abs(results[0].Combined-0.91) > 1e-9 {
			t.Errorf("combined = %v, want 0.91", results[0].Combined)
		}
	})

	t.Run("keyword-heavy weight inverts the order", func(t *testing.T) {
		results, err := HybridRank(query, docs, 0.1, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Document.ID != "keyword" {
			t.Errorf("top result = %s, want keyword", results[0].Document.ID)
		}
		// combined = 0*0.1 + 0.9*0.9
		if math.Abs(results[0].Combined-0.81) > 1e-9 {
			t.Errorf("combined = %v, want 0.81", results[0].Combined)
		}
	})
}

func TestHybridRank_SkipsDocumentsWithoutEmbeddings(t *testing.T) {
	docs := []DocumentScore{
		{Document: docWithEmbedding("with", "[1,0]"), KeywordScore: 0.2},
		{Document: docWithEmbedding("without", ""), KeywordScore: 0.9},
	}
	results, err := HybridRank([]float32{1, 0}, docs, 0.7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "with" {
		t.Fatalf("results = %v, want only the embedded document", results)
	}
}
