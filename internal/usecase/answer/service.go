// Package answer runs the question-answering flow: cache consult, retrieval,
// context assembly, generation, and cache write-back.
package answer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/cache"
	"github.com/awqaf-cloud/waqfrag/internal/domain"
	"github.com/awqaf-cloud/waqfrag/internal/metrics"
	"github.com/awqaf-cloud/waqfrag/internal/relevance"
	"github.com/awqaf-cloud/waqfrag/internal/usecase/prompting"
	"github.com/awqaf-cloud/waqfrag/internal/usecase/retrieval"
)

const (
	retrieveLimit    = 5
	retrieveMinScore = 1
	// historyWindow bounds how many prior conversation turns accompany the
	// question (three exchanges).
	historyWindow = 6
)

// fallbackAnswer is returned when the generation call fails; the exchange
// still has to say something.
const fallbackAnswer = "عذراً، لم أتمكن من الإجابة على سؤالك."

// Source describes one grounding document of an answer.
type Source struct {
	ID             string          `json:"id"`
	Title          string          `json:"title,omitempty"`
	Category       domain.Category `json:"category,omitempty"`
	RelevanceScore float64         `json:"relevance_score,omitempty"`
}

// Answer is the outcome of one ask. Degraded marks the fixed apology text
// produced when generation failed.
type Answer struct {
	Message  string
	Category domain.Category
	Sources  []Source
	Cached   bool
	Degraded bool
}

// Service answers questions over the corpus.
type Service struct {
	answers   *cache.AnswerCache
	retriever Retriever
	generator domain.Generator
	log       InteractionLog
	logger    *zap.Logger
}

// New creates the answer service.
func New(
	answers *cache.AnswerCache,
	retriever Retriever,
	generator domain.Generator,
	log InteractionLog,
	logger *zap.Logger,
) *Service {
	return &Service{
		answers:   answers,
		retriever: retriever,
		generator: generator,
		log:       log,
		logger:    logger,
	}
}

// Ask answers the question, serving from the answer cache when a prior
// exchange matches and the cached answer was not voted down. history, if
// given, carries earlier turns of the conversation; only the most recent
// window is forwarded to the generator.
func (s *Service) Ask(ctx context.Context, question string, history []domain.Message) (Answer, error) {
	category := relevance.CategorizeQuery(question)

	if e, ok := s.answers.Lookup(question); ok && e.Rating >= 0 {
		metrics.AnswerCacheTotal.WithLabelValues("hit").Inc()
		return Answer{
			Message:  e.Answer,
			Category: category,
			Sources:  sourcesFromSerialized(e.Sources),
			Cached:   true,
		}, nil
	}
	metrics.AnswerCacheTotal.WithLabelValues("miss").Inc()

	docs, err := s.retriever.RetrieveDocuments(ctx, question, retrieval.DocumentOptions{
		Limit:    retrieveLimit,
		MinScore: retrieveMinScore,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("retrieve documents: %w", err)
	}

	grounding := prompting.ExtractContext(question, docs, prompting.DefaultContextBudget)
	systemPrompt := prompting.SystemPrompt(grounding, category)

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	messages := make([]domain.Message, 0, len(history)+2)
	messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: question})

	sources := make([]Source, len(docs))
	ids := make([]string, len(docs))
	for i, d := range docs {
		sources[i] = Source{
			ID:             d.Document.ID,
			Title:          d.Document.Title,
			Category:       d.Document.Category,
			RelevanceScore: d.RelevanceScore,
		}
		ids[i] = d.Document.ID
	}

	text, err := s.generator.Complete(ctx, messages)
	if err != nil || text == "" {
		// Degraded answers are never cached: the failure is transient and
		// must not shadow a future successful generation.
		s.logger.Warn("generation failed, returning fallback answer", zap.Error(err))
		return Answer{
			Message:  fallbackAnswer,
			Category: category,
			Sources:  sources,
			Degraded: true,
		}, nil
	}

	s.answers.Store(question, text, serializeIDs(ids), 0)

	return Answer{
		Message:  text,
		Category: category,
		Sources:  sources,
	}, nil
}

// Rate records user feedback for a previously answered question: the cached
// answer's rating is overwritten (exact key only) and the exchange is
// appended to the interaction log for the analytics pass. A cache miss on
// the rating update is not an error; the entry may have been evicted.
func (s *Service) Rate(
	ctx context.Context, question, answer string, sourceIDs []string, rating int, feedback string,
) error {
	s.answers.UpdateRating(question, rating)

	err := s.log.Append(ctx, domain.Interaction{
		Question:  question,
		Answer:    answer,
		SourceIDs: sourceIDs,
		Rating:    rating,
		Feedback:  feedback,
	})
	if err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}
	return nil
}

func serializeIDs(ids []string) string {
	data, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func sourcesFromSerialized(raw string) []Source {
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	sources := make([]Source, len(ids))
	for i, id := range ids {
		sources[i] = Source{ID: id}
	}
	return sources
}
