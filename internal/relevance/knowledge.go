package relevance

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// Knowledge-document scoring weights. Pinned by long-standing answer-quality
// tuning; do not adjust independently of the other kinds.
const (
	titleExactPoints    = 10.0
	titlePartialPoints  = 5.0
	tagExactPoints      = 15.0
	tagPartialPoints    = 8.0
	affinityPoints      = 3.0
	multiTermBoostStep  = 0.1
	shortContentRunes   = 100
	longContentRunes    = 10000
	shortContentPenalty = 0.7
	longContentPenalty  = 0.9
)

// ScoreKnowledge computes the keyword relevance of a knowledge document for
// the query. Title matches weigh more than content matches, exact tag matches
// most of all; repeated content occurrences decay past the fifth; documents
// matching several distinct terms get a single multiplicative boost; very
// short and very long bodies are penalized. The result is rounded to one
// decimal place and is always >= 0.
func ScoreKnowledge(query string, doc domain.KnowledgeDocument) float64 {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return 0
	}

	titleText := strings.ToLower(doc.Title)
	docText := titleText + " " + strings.ToLower(doc.Content)

	var score float64

	for _, term := range terms {
		if containsWord(titleText, term) {
			score += titleExactPoints
		} else if strings.Contains(titleText, term) {
			score += titlePartialPoints
		}
	}

	if doc.Tags != "" {
		tags := strings.ToLower(doc.Tags)
		for _, term := range terms {
			if containsWord(tags, term) {
				score += tagExactPoints
			} else if strings.Contains(tags, term) {
				score += tagPartialPoints
			}
		}
	}

	for _, term := range terms {
		if count := countOccurrences(docText, term); count > 0 {
			score += diminishedContentScore(count)
		}
	}

	score += affinityBonus(terms, categoryKeywords[doc.Category], affinityPoints)

	termsFound := 0
	for _, term := range terms {
		if strings.Contains(docText, term) {
			termsFound++
		}
	}
	if termsFound > 1 {
		score *= 1 + multiTermBoostStep*float64(termsFound)
	}

	// The thresholds cannot both hold, so the penalties never stack.
	contentLen := utf8.RuneCountInString(doc.Content)
	switch {
	case contentLen < shortContentRunes:
		score *= shortContentPenalty
	case contentLen > longContentRunes:
		score *= longContentPenalty
	}

	return math.Round(score*10) / 10
}
