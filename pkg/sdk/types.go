package waqfrag

import (
	"github.com/awqaf-cloud/waqfrag/internal/cache"
	"github.com/awqaf-cloud/waqfrag/internal/domain"
	answeruc "github.com/awqaf-cloud/waqfrag/internal/usecase/answer"
	feedbackuc "github.com/awqaf-cloud/waqfrag/internal/usecase/feedback"
	retrievaluc "github.com/awqaf-cloud/waqfrag/internal/usecase/retrieval"
)

// Domain types re-exported for SDK callers.
type (
	// Message is one turn of a conversation.
	Message = domain.Message

	// Category classifies a knowledge document or query by topical area.
	Category = domain.Category

	// SourceKind tags which corpus a merged search result came from.
	SourceKind = domain.SourceKind

	// KnowledgeDocument is the primary retrieval target.
	KnowledgeDocument = domain.KnowledgeDocument

	// CaseRecord is a waqf court case summary.
	CaseRecord = domain.CaseRecord

	// InstructionRecord is a ministerial instruction or circular.
	InstructionRecord = domain.InstructionRecord

	// ScoredDocument is a knowledge document with its relevance score.
	ScoredDocument = domain.ScoredDocument

	// ScoredItem is a cross-corpus search result.
	ScoredItem = domain.ScoredItem

	// Answer is the outcome of one Ask.
	Answer = answeruc.Answer

	// Source describes one grounding document of an answer.
	Source = answeruc.Source

	// DocumentOptions configures Search.
	DocumentOptions = retrievaluc.DocumentOptions

	// ItemOptions configures SearchAll.
	ItemOptions = retrievaluc.ItemOptions

	// Report carries negative-feedback patterns and suggestions.
	Report = feedbackuc.Report

	// CacheStats is a point-in-time snapshot of the answer cache.
	CacheStats = cache.Stats
)

// Query and record categories.
const (
	CategoryLaw            = domain.CategoryLaw
	CategoryJurisprudence  = domain.CategoryJurisprudence
	CategoryMajalla        = domain.CategoryMajalla
	CategoryHistorical     = domain.CategoryHistorical
	CategoryAdministrative = domain.CategoryAdministrative
	CategoryReference      = domain.CategoryReference
	CategoryGeneral        = domain.CategoryGeneral
)

// Corpus source kinds.
const (
	SourceKnowledge   = domain.SourceKnowledge
	SourceCase        = domain.SourceCase
	SourceInstruction = domain.SourceInstruction
)

// Rating values for Rate.
const (
	RatingHelpful    = domain.RatingHelpful
	RatingNotHelpful = domain.RatingNotHelpful
)
