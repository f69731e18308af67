// Package corpus stores the three record kinds as Redis hashes with
// per-kind key prefixes. Filtering by category and active flag happens
// client-side after the scan.
package corpus

import (
	"context"
	"fmt"
	"strings"

	"github.com/awqaf-cloud/waqfrag/internal/db"
	"github.com/awqaf-cloud/waqfrag/internal/domain"
	"github.com/awqaf-cloud/waqfrag/internal/usecase/retrieval"
)

// Key prefixes per record kind.
const (
	keyRoot           = "waqfrag:corpus:"
	knowledgePrefix   = keyRoot + "knowledge:"
	casePrefix        = keyRoot + "case:"
	instructionPrefix = keyRoot + "instruction:"
)

// store is the consumer interface for the corpus (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Compile-time check: Repo satisfies the retrieval consumer interface.
var _ retrieval.Repository = (*Repo)(nil)

// Repo implements usecase/retrieval.Repository.
type Repo struct {
	store store
}

// New creates a corpus repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// ListKnowledge returns knowledge documents matching the filter.
func (r *Repo) ListKnowledge(ctx context.Context, f retrieval.KnowledgeFilter) ([]domain.KnowledgeDocument, error) {
	keys, maps, err := r.scanAll(ctx, knowledgePrefix)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	docs := make([]domain.KnowledgeDocument, 0, len(maps))
	for i, m := range maps {
		doc := parseKnowledgeFields(recordID(keys[i], knowledgePrefix), m)
		if f.ActiveOnly && !doc.IsActive {
			continue
		}
		if f.Category != "" && doc.Category != f.Category {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ListCases returns waqf case records.
func (r *Repo) ListCases(ctx context.Context, activeOnly bool) ([]domain.CaseRecord, error) {
	keys, maps, err := r.scanAll(ctx, casePrefix)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	cases := make([]domain.CaseRecord, 0, len(maps))
	for i, m := range maps {
		c := parseCaseFields(recordID(keys[i], casePrefix), m)
		if activeOnly && !c.IsActive {
			continue
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// ListInstructions returns ministerial instruction records.
func (r *Repo) ListInstructions(ctx context.Context, activeOnly bool) ([]domain.InstructionRecord, error) {
	keys, maps, err := r.scanAll(ctx, instructionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list instructions: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	instructions := make([]domain.InstructionRecord, 0, len(maps))
	for i, m := range maps {
		in := parseInstructionFields(recordID(keys[i], instructionPrefix), m)
		if activeOnly && !in.IsActive {
			continue
		}
		instructions = append(instructions, in)
	}
	return instructions, nil
}

// ImportKnowledge bulk-stores knowledge documents in one pipelined round-trip.
func (r *Repo) ImportKnowledge(ctx context.Context, docs []domain.KnowledgeDocument) error {
	items := make([]db.HashSetItem, len(docs))
	for i, doc := range docs {
		items[i] = db.HashSetItem{Key: knowledgePrefix + doc.ID, Fields: buildKnowledgeFields(doc)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("import knowledge: %w", err)
	}
	return nil
}

// ImportCases bulk-stores case records.
func (r *Repo) ImportCases(ctx context.Context, cases []domain.CaseRecord) error {
	items := make([]db.HashSetItem, len(cases))
	for i, c := range cases {
		items[i] = db.HashSetItem{Key: casePrefix + c.ID, Fields: buildCaseFields(c)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("import cases: %w", err)
	}
	return nil
}

// ImportInstructions bulk-stores instruction records.
func (r *Repo) ImportInstructions(ctx context.Context, instructions []domain.InstructionRecord) error {
	items := make([]db.HashSetItem, len(instructions))
	for i, in := range instructions {
		items[i] = db.HashSetItem{Key: instructionPrefix + in.ID, Fields: buildInstructionFields(in)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("import instructions: %w", err)
	}
	return nil
}

// Purge deletes every corpus key and returns how many were removed.
func (r *Repo) Purge(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, keyRoot+"*")
	if err != nil {
		return 0, fmt.Errorf("scan corpus keys: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return 0, fmt.Errorf("del %s: %w", key, err)
		}
	}
	return len(keys), nil
}

func (r *Repo) scanAll(ctx context.Context, prefix string) ([]string, []map[string]string, error) {
	keys, err := r.store.Scan(ctx, prefix+"*")
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil, nil, nil
	}
	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %d records: %w", len(keys), err)
	}
	return keys, maps, nil
}

func recordID(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}
