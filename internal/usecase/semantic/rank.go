package semantic

import (
	"sort"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// DocumentScore pairs a knowledge document with its normalized keyword score
// for hybrid fusion. A missing keyword score is treated as 0.
type DocumentScore struct {
	Document     domain.KnowledgeDocument
	KeywordScore float64
}

// Result is a semantically ranked document.
type Result struct {
	Document   domain.KnowledgeDocument
	Similarity float64
}

// HybridResult carries all three scores of the hybrid path. Combined is the
// sort key; Similarity and KeywordScore are kept for diagnostics.
type HybridResult struct {
	Document     domain.KnowledgeDocument
	Similarity   float64
	KeywordScore float64
	Combined     float64
}

// Rank sorts the documents by cosine similarity to queryVec, descending, and
// returns the first topK. Documents without a parsable embedding are silently
// excluded; a dimension mismatch on a parsable embedding aborts the call.
func Rank(queryVec []float32, docs []domain.KnowledgeDocument, topK int) ([]Result, error) {
	results := make([]Result, 0, len(docs))

	for _, doc := range docs {
		vec, err := domain.ParseEmbedding(doc.Embedding)
		if err != nil {
			continue
		}
		sim, err := CosineSimilarity(queryVec, vec)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Document: doc, Similarity: sim})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// HybridRank fuses semantic similarity with keyword scores linearly:
// combined = similarity*semanticWeight + keyword*(1-semanticWeight).
// This is a weight-sensitive linear blend, not rank fusion: moving the weight
// between 0 and 1 slides the ordering between the two signals. Documents
// without a parsable embedding are silently excluded.
func HybridRank(
	queryVec []float32, docs []DocumentScore, semanticWeight float64, topK int,
) ([]HybridResult, error) {
	keywordWeight := 1 - semanticWeight

	results := make([]HybridResult, 0, len(docs))
	for _, ds := range docs {
		vec, err := domain.ParseEmbedding(ds.Document.Embedding)
		if err != nil {
			continue
		}
		sim, err := CosineSimilarity(queryVec, vec)
		if err != nil {
			return nil, err
		}
		results = append(results, HybridResult{
			Document:     ds.Document,
			Similarity:   sim,
			KeywordScore: ds.KeywordScore,
			Combined:     sim*semanticWeight + ds.KeywordScore*keywordWeight,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Combined > results[j].Combined
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
