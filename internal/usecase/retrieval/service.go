// Package retrieval orchestrates corpus search: it fetches candidates,
// scores them lexically, optionally blends in embedding similarity, and
// returns a bounded ranked result set.
package retrieval

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
	"github.com/awqaf-cloud/waqfrag/internal/metrics"
	"github.com/awqaf-cloud/waqfrag/internal/relevance"
	"github.com/awqaf-cloud/waqfrag/internal/usecase/semantic"
)

const (
	// semanticWeight is the hybrid blend: 70% embedding similarity,
	// 30% keyword score.
	semanticWeight = 0.7
	// keywordScale maps raw lexical scores into the [0,~1] band the fusion
	// expects, and back. Empirical, not a probability.
	keywordScale = 100.0
	// overFetchFactor requests extra fused candidates so min-score
	// filtering still leaves a full page.
	overFetchFactor = 2

	defaultDocumentLimit = 5
	defaultItemLimit     = 10
	defaultMinScore      = 1.0
)

// DocumentOptions configures RetrieveDocuments. The zero value means:
// all categories, limit 5, min score 1, semantic search enabled.
type DocumentOptions struct {
	Category        domain.Category
	Limit           int
	MinScore        float64
	DisableSemantic bool
}

func (o DocumentOptions) withDefaults() DocumentOptions {
	if o.Limit <= 0 {
		o.Limit = defaultDocumentLimit
	}
	if o.MinScore <= 0 {
		o.MinScore = defaultMinScore
	}
	return o
}

// ItemOptions configures RetrieveItems. Zero value: all sources, limit 10,
// min score 1.
type ItemOptions struct {
	Sources  []domain.SourceKind
	Limit    int
	MinScore float64
}

func (o ItemOptions) withDefaults() ItemOptions {
	if len(o.Sources) == 0 {
		o.Sources = []domain.SourceKind{domain.SourceKnowledge, domain.SourceCase, domain.SourceInstruction}
	}
	if o.Limit <= 0 {
		o.Limit = defaultItemLimit
	}
	if o.MinScore <= 0 {
		o.MinScore = defaultMinScore
	}
	return o
}

// Service ranks corpus records against free-text queries.
type Service struct {
	repo     Repository
	embedder Embedder
	logger   *zap.Logger
}

// New creates a retrieval service. embedder may be nil, which disables the
// semantic path entirely.
func New(repo Repository, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embedder: embedder, logger: logger}
}

// RetrieveDocuments returns up to opts.Limit knowledge documents scoring at
// least opts.MinScore, ranked best-first. When the semantic path is enabled
// and the corpus carries embeddings, lexical scores are fused with embedding
// similarity; any failure on that path degrades silently (logged, counted)
// to pure keyword ranking. Repository failures propagate.
func (s *Service) RetrieveDocuments(
	ctx context.Context, query string, opts DocumentOptions,
) ([]domain.ScoredDocument, error) {
	opts = opts.withDefaults()

	docs, err := s.repo.ListKnowledge(ctx, KnowledgeFilter{
		Category:   opts.Category,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list knowledge documents: %w", err)
	}

	hasEmbeddings := false
	for _, d := range docs {
		if d.Embedding != "" {
			hasEmbeddings = true
			break
		}
	}

	if opts.DisableSemantic || !hasEmbeddings || s.embedder == nil {
		return keywordRank(query, docs, opts.MinScore, opts.Limit), nil
	}

	results, err := s.hybridRank(ctx, query, docs, opts)
	if err != nil {
		metrics.RetrievalFallbackTotal.Inc()
		s.logger.Warn("semantic retrieval failed, falling back to keyword ranking",
			zap.Error(err))
		return keywordRank(query, docs, opts.MinScore, opts.Limit), nil
	}
	return results, nil
}

func (s *Service) hybridRank(
	ctx context.Context, query string, docs []domain.KnowledgeDocument, opts DocumentOptions,
) ([]domain.ScoredDocument, error) {
	emb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored := make([]semantic.DocumentScore, len(docs))
	for i, d := range docs {
		scored[i] = semantic.DocumentScore{
			Document:     d,
			KeywordScore: relevance.ScoreKnowledge(query, d) / keywordScale,
		}
	}

	fused, err := semantic.HybridRank(emb.Embedding, scored, semanticWeight, opts.Limit*overFetchFactor)
	if err != nil {
		return nil, fmt.Errorf("hybrid rank: %w", err)
	}

	results := make([]domain.ScoredDocument, 0, len(fused))
	for _, r := range fused {
		// Rescale so min-score thresholds mean the same thing on both paths.
		score := r.Combined * keywordScale
		if score < opts.MinScore {
			continue
		}
		results = append(results, domain.ScoredDocument{
			Document:       r.Document,
			RelevanceScore: score,
		})
	}
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

func keywordRank(
	query string, docs []domain.KnowledgeDocument, minScore float64, limit int,
) []domain.ScoredDocument {
	results := make([]domain.ScoredDocument, 0, len(docs))
	for _, d := range docs {
		score := relevance.ScoreKnowledge(query, d)
		if score < minScore {
			continue
		}
		results = append(results, domain.ScoredDocument{Document: d, RelevanceScore: score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// RetrieveItems runs keyword-only scoring independently over the requested
// corpora, tags each survivor with its source kind, and merges everything
// into one globally sorted, bounded list. The per-kind scorers are weighted
// differently, so cross-kind ordering is approximate; this is an accepted
// limitation of the merged view.
func (s *Service) RetrieveItems(
	ctx context.Context, query string, opts ItemOptions,
) ([]domain.ScoredItem, error) {
	opts = opts.withDefaults()

	var items []domain.ScoredItem

	for _, source := range opts.Sources {
		switch source {
		case domain.SourceKnowledge:
			docs, err := s.repo.ListKnowledge(ctx, KnowledgeFilter{ActiveOnly: true})
			if err != nil {
				return nil, fmt.Errorf("list knowledge documents: %w", err)
			}
			for i := range docs {
				if score := relevance.ScoreKnowledge(query, docs[i]); score >= opts.MinScore {
					items = append(items, domain.ScoredItem{
						Kind: domain.SourceKnowledge, Document: &docs[i], RelevanceScore: score,
					})
				}
			}
		case domain.SourceCase:
			cases, err := s.repo.ListCases(ctx, true)
			if err != nil {
				return nil, fmt.Errorf("list cases: %w", err)
			}
			for i := range cases {
				if score := relevance.ScoreCase(query, cases[i]); score >= opts.MinScore {
					items = append(items, domain.ScoredItem{
						Kind: domain.SourceCase, Case: &cases[i], RelevanceScore: score,
					})
				}
			}
		case domain.SourceInstruction:
			instructions, err := s.repo.ListInstructions(ctx, true)
			if err != nil {
				return nil, fmt.Errorf("list instructions: %w", err)
			}
			for i := range instructions {
				if score := relevance.ScoreInstruction(query, instructions[i]); score >= opts.MinScore {
					items = append(items, domain.ScoredItem{
						Kind: domain.SourceInstruction, Instruction: &instructions[i], RelevanceScore: score,
					})
				}
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].RelevanceScore > items[j].RelevanceScore
	})

	if len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items, nil
}
