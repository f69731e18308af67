// Package chi exposes the QA pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/cache"
	"github.com/awqaf-cloud/waqfrag/internal/domain"
	answeruc "github.com/awqaf-cloud/waqfrag/internal/usecase/answer"
	feedbackuc "github.com/awqaf-cloud/waqfrag/internal/usecase/feedback"
	retrievaluc "github.com/awqaf-cloud/waqfrag/internal/usecase/retrieval"
)

// maxSearchLimit caps client-requested result counts.
const maxSearchLimit = 50

// Error codes returned in JSON error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeUnavailable      = "dependency_unavailable"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Pinger reports storage connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies.
type Server struct {
	answers       *answeruc.Service
	retrieval     *retrievaluc.Service
	insights      *feedbackuc.Service
	answerCache   *cache.AnswerCache
	pinger        Pinger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	answers *answeruc.Service,
	retrieval *retrievaluc.Service,
	insights *feedbackuc.Service,
	answerCache *cache.AnswerCache,
	pinger Pinger,
	logger *zap.Logger,
) *Server {
	s := &Server{
		answers:     answers,
		retrieval:   retrieval,
		insights:    insights,
		answerCache: answerCache,
		pinger:      pinger,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRepositoryUnavailable, http.StatusServiceUnavailable, codeUnavailable),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ask", s.Ask)
		r.Post("/search", s.Search)
		r.Post("/search/all", s.SearchAll)
		r.Post("/feedback", s.Feedback)
		r.Get("/insights", s.Insights)
		r.Get("/cache/stats", s.CacheStats)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type messageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type askRequest struct {
	Question string       `json:"question"`
	History  []messageDTO `json:"history,omitempty"`
}

type askResponse struct {
	Answer   string            `json:"answer"`
	Category domain.Category   `json:"category"`
	Sources  []answeruc.Source `json:"sources"`
	Cached   bool              `json:"cached"`
	Degraded bool              `json:"degraded,omitempty"`
}

// Ask handles POST /v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}

	history, err := historyFromDTO(req.History)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	answer, err := s.answers.Ask(r.Context(), req.Question, history)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Answer:   answer.Message,
		Category: answer.Category,
		Sources:  sourcesOrEmpty(answer.Sources),
		Cached:   answer.Cached,
		Degraded: answer.Degraded,
	})
}

type searchRequest struct {
	Query    string  `json:"query"`
	Category string  `json:"category,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	MinScore float64 `json:"min_score,omitempty"`
	Semantic *bool   `json:"semantic,omitempty"`
}

type documentItem struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Category       domain.Category `json:"category"`
	Source         string          `json:"source,omitempty"`
	RelevanceScore float64         `json:"relevance_score"`
}

type searchResponse struct {
	Items []documentItem `json:"items"`
	Total int            `json:"total"`
}

// Search handles POST /v1/search: ranked knowledge documents.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}
	if req.Limit < 0 || req.Limit > maxSearchLimit {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit out of range")
		return
	}
	category, err := categoryFromString(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	docs, err := s.retrieval.RetrieveDocuments(r.Context(), req.Query, retrievaluc.DocumentOptions{
		Category:        category,
		Limit:           req.Limit,
		MinScore:        req.MinScore,
		DisableSemantic: req.Semantic != nil && !*req.Semantic,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]documentItem, len(docs))
	for i, d := range docs {
		items[i] = documentItem{
			ID:             d.Document.ID,
			Title:          d.Document.Title,
			Category:       d.Document.Category,
			Source:         d.Document.Source,
			RelevanceScore: d.RelevanceScore,
		}
	}
	writeJSON(w, http.StatusOK, searchResponse{Items: items, Total: len(items)})
}

type searchAllRequest struct {
	Query    string   `json:"query"`
	Sources  []string `json:"sources,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	MinScore float64  `json:"min_score,omitempty"`
}

type corpusItem struct {
	Kind           domain.SourceKind `json:"kind"`
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	RelevanceScore float64           `json:"relevance_score"`
}

type searchAllResponse struct {
	Items []corpusItem `json:"items"`
	Total int          `json:"total"`
}

// SearchAll handles POST /v1/search/all: merged results across the three
// record kinds.
func (s *Server) SearchAll(w http.ResponseWriter, r *http.Request) {
	var req searchAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}
	if req.Limit < 0 || req.Limit > maxSearchLimit {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit out of range")
		return
	}
	kinds, err := sourceKindsFromStrings(req.Sources)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	results, err := s.retrieval.RetrieveItems(r.Context(), req.Query, retrievaluc.ItemOptions{
		Sources:  kinds,
		Limit:    req.Limit,
		MinScore: req.MinScore,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]corpusItem, len(results))
	for i, res := range results {
		items[i] = corpusItem{
			Kind:           res.Kind,
			ID:             res.ItemID(),
			Title:          res.Title(),
			RelevanceScore: res.RelevanceScore,
		}
	}
	writeJSON(w, http.StatusOK, searchAllResponse{Items: items, Total: len(items)})
}

type feedbackRequest struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer,omitempty"`
	SourceIDs []string `json:"source_ids,omitempty"`
	Rating    string   `json:"rating"`
	Feedback  string   `json:"feedback,omitempty"`
}

// Feedback handles POST /v1/feedback: records a helpful/not_helpful vote.
func (s *Server) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}

	var rating int
	switch req.Rating {
	case "helpful":
		rating = domain.RatingHelpful
	case "not_helpful":
		rating = domain.RatingNotHelpful
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			`rating must be "helpful" or "not_helpful"`)
		return
	}

	err := s.answers.Rate(r.Context(), req.Question, req.Answer, req.SourceIDs, rating, req.Feedback)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Insights handles GET /v1/insights: negative-feedback patterns and
// improvement suggestions.
func (s *Server) Insights(w http.ResponseWriter, r *http.Request) {
	report, err := s.insights.Suggest(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CacheStats handles GET /v1/cache/stats.
func (s *Server) CacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.answerCache.Snapshot())
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := map[string]string{"database": "ok"}
	httpStatus := http.StatusOK

	if err := s.pinger.Ping(r.Context()); err != nil {
		s.logger.Warn("Health check failed", zap.Error(err))
		status = "unhealthy"
		checks["database"] = "unreachable"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func historyFromDTO(dtos []messageDTO) ([]domain.Message, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	history := make([]domain.Message, len(dtos))
	for i, m := range dtos {
		if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
			return nil, errors.New(`history roles must be "user" or "assistant"`)
		}
		history[i] = domain.Message{Role: m.Role, Content: m.Content}
	}
	return history, nil
}

func categoryFromString(s string) (domain.Category, error) {
	switch c := domain.Category(s); c {
	case "", domain.CategoryLaw, domain.CategoryJurisprudence, domain.CategoryMajalla,
		domain.CategoryHistorical, domain.CategoryAdministrative, domain.CategoryReference:
		return c, nil
	default:
		return "", errors.New("unknown category: " + s)
	}
}

func sourceKindsFromStrings(sources []string) ([]domain.SourceKind, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	kinds := make([]domain.SourceKind, len(sources))
	for i, s := range sources {
		switch k := domain.SourceKind(s); k {
		case domain.SourceKnowledge, domain.SourceCase, domain.SourceInstruction:
			kinds[i] = k
		default:
			return nil, errors.New("unknown source kind: " + s)
		}
	}
	return kinds, nil
}

func sourcesOrEmpty(sources []answeruc.Source) []answeruc.Source {
	if sources == nil {
		return []answeruc.Source{}
	}
	return sources
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRepositoryUnavailable,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("request failed", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
