package waqfrag

import (
	"time"

	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	openAIKey     string
	openAIBaseURL string
	embedModel    string
	generateModel string

	embedder  domain.Embedder
	generator domain.Generator

	embeddingCacheTTL time.Duration

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisDB selects a logical Redis database.
func WithRedisDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithOpenAI configures an OpenAI-compatible provider for both embeddings and
// completions. baseURL may be empty for the default endpoint.
func WithOpenAI(apiKey, baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
		c.openAIBaseURL = baseURL
	})
}

// WithModels overrides the embedding and completion model names used with
// WithOpenAI. Empty strings keep the defaults.
func WithModels(embedModel, generateModel string) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedModel = embedModel
		c.generateModel = generateModel
	})
}

// WithEmbedder supplies a custom embedder, replacing the OpenAI one.
func WithEmbedder(e domain.Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithGenerator supplies a custom completion backend, replacing the OpenAI one.
func WithGenerator(g domain.Generator) Option {
	return optionFunc(func(c *clientConfig) {
		c.generator = g
	})
}

// WithEmbeddingCacheTTL bounds the lifetime of cached query embeddings.
// Zero (the default) keeps them forever.
func WithEmbeddingCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.embeddingCacheTTL = ttl
	})
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
