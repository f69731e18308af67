package waqfrag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/cache"
	dbRedis "github.com/awqaf-cloud/waqfrag/internal/db/redis"
	"github.com/awqaf-cloud/waqfrag/internal/relevance"
	corpusrepo "github.com/awqaf-cloud/waqfrag/internal/repository/corpus"
	"github.com/awqaf-cloud/waqfrag/internal/repository/embcache"
	"github.com/awqaf-cloud/waqfrag/internal/repository/interactions"
	openaiTransport "github.com/awqaf-cloud/waqfrag/internal/transport/openai"
	answeruc "github.com/awqaf-cloud/waqfrag/internal/usecase/answer"
	feedbackuc "github.com/awqaf-cloud/waqfrag/internal/usecase/feedback"
	retrievaluc "github.com/awqaf-cloud/waqfrag/internal/usecase/retrieval"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the embedded waqfrag entry point.
type Client struct {
	store     *dbRedis.Store
	corpus    *corpusrepo.Repo
	answers   *cache.AnswerCache
	asker     *answeruc.Service
	retriever *retrievaluc.Service
	insights  *feedbackuc.Service
}

// New creates a Client and connects to the corpus store. The provided context
// is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("waqfrag: database address required (use WithRedis)")
	}
	if cfg.generator == nil && cfg.openAIKey == "" {
		return nil, errors.New("waqfrag: completion backend required (use WithOpenAI or WithGenerator)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("waqfrag: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("waqfrag: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

// wireClient assembles the pipeline over a connected store.
func wireClient(store *dbRedis.Store, cfg *clientConfig) *Client {
	embedder := cfg.embedder
	if embedder == nil && cfg.openAIKey != "" {
		base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:  cfg.openAIKey,
			BaseURL: cfg.openAIBaseURL,
			Model:   cfg.embedModel,
			Logger:  cfg.logger,
		})
		embedder = embcache.New(base, store, cfg.embeddingCacheTTL, nil, cfg.logger)
	}

	generator := cfg.generator
	if generator == nil {
		generator = openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:  cfg.openAIKey,
			BaseURL: cfg.openAIBaseURL,
			Model:   cfg.generateModel,
			Logger:  cfg.logger,
		})
	}

	corpus := corpusrepo.New(store)
	log := interactions.New(store, cfg.logger)

	answers := cache.NewAnswerCache()
	retriever := retrievaluc.New(corpus, embedder, cfg.logger)

	return &Client{
		store:     store,
		corpus:    corpus,
		answers:   answers,
		asker:     answeruc.New(answers, retriever, generator, log, cfg.logger),
		retriever: retriever,
		insights:  feedbackuc.New(log),
	}
}

// Close releases the underlying store connection.
func (c *Client) Close() {
	c.store.Close()
}

// Ask answers a question over the corpus. history carries earlier turns of
// the conversation and may be nil.
func (c *Client) Ask(ctx context.Context, question string, history []Message) (Answer, error) {
	return c.asker.Ask(ctx, question, history)
}

// Rate records a vote against a previously returned answer. Use RatingHelpful
// or RatingNotHelpful; feedback is optional free text.
func (c *Client) Rate(
	ctx context.Context, question, answer string, sourceIDs []string, rating int, feedback string,
) error {
	return c.asker.Rate(ctx, question, answer, sourceIDs, rating, feedback)
}

// Search returns ranked knowledge documents for a query.
func (c *Client) Search(ctx context.Context, query string, opts DocumentOptions) ([]ScoredDocument, error) {
	return c.retriever.RetrieveDocuments(ctx, query, opts)
}

// SearchAll returns merged ranked results across the record kinds.
func (c *Client) SearchAll(ctx context.Context, query string, opts ItemOptions) ([]ScoredItem, error) {
	return c.retriever.RetrieveItems(ctx, query, opts)
}

// Insights analyzes recent negative feedback and returns patterns with
// improvement suggestions.
func (c *Client) Insights(ctx context.Context) (Report, error) {
	return c.insights.Suggest(ctx)
}

// CacheStats reports the current answer cache contents.
func (c *Client) CacheStats() CacheStats {
	return c.answers.Snapshot()
}

// CategorizeQuestion reports the topical category a question would be
// answered under, without running the pipeline.
func (c *Client) CategorizeQuestion(question string) Category {
	return relevance.CategorizeQuery(question)
}

// ImportKnowledge bulk-writes knowledge documents into the corpus.
func (c *Client) ImportKnowledge(ctx context.Context, docs []KnowledgeDocument) error {
	return c.corpus.ImportKnowledge(ctx, docs)
}

// ImportCases bulk-writes case records into the corpus.
func (c *Client) ImportCases(ctx context.Context, cases []CaseRecord) error {
	return c.corpus.ImportCases(ctx, cases)
}

// ImportInstructions bulk-writes instruction records into the corpus.
func (c *Client) ImportInstructions(ctx context.Context, instructions []InstructionRecord) error {
	return c.corpus.ImportInstructions(ctx, instructions)
}

// PurgeCorpus deletes every corpus record and returns the count removed.
func (c *Client) PurgeCorpus(ctx context.Context) (int, error) {
	return c.corpus.Purge(ctx)
}
