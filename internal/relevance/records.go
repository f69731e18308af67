package relevance

import (
	"strings"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// Points for the lighter case/instruction scoring tier.
const (
	recordTitlePoints      = 5.0
	recordIdentifierPoints = 10.0
)

// ScoreCase computes the keyword relevance of a case record. This is a
// lighter tier than knowledge scoring: substring title matches, a flat bonus
// when any term hits the case number, raw (undiminished) content counts, and
// the case-type affinity bonus. No multi-term boost, no length penalty, no
// rounding; callers must not compare these scores with knowledge scores.
func ScoreCase(query string, rec domain.CaseRecord) float64 {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return 0
	}

	titleText := strings.ToLower(rec.Title)
	caseText := titleText + " " + strings.ToLower(rec.Description) + " " + strings.ToLower(rec.CaseNumber)

	var score float64

	for _, term := range terms {
		if strings.Contains(titleText, term) {
			score += recordTitlePoints
		}
	}

	caseNumber := strings.ToLower(rec.CaseNumber)
	for _, term := range terms {
		if strings.Contains(caseNumber, term) {
			score += recordIdentifierPoints
			break
		}
	}

	for _, term := range terms {
		score += float64(countOccurrences(caseText, term))
	}

	score += affinityBonus(terms, caseTypeKeywords[rec.CaseType], affinityPoints)

	return score
}

// ScoreInstruction computes the keyword relevance of a ministerial
// instruction record, using the same lighter tier as ScoreCase with the
// instruction number as the identifier and the type keyword table.
func ScoreInstruction(query string, rec domain.InstructionRecord) float64 {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return 0
	}

	titleText := strings.ToLower(rec.Title)
	instructionText := titleText + " " + strings.ToLower(rec.Content) + " " + strings.ToLower(rec.InstructionNumber)

	var score float64

	for _, term := range terms {
		if strings.Contains(titleText, term) {
			score += recordTitlePoints
		}
	}

	number := strings.ToLower(rec.InstructionNumber)
	for _, term := range terms {
		if strings.Contains(number, term) {
			score += recordIdentifierPoints
			break
		}
	}

	for _, term := range terms {
		score += float64(countOccurrences(instructionText, term))
	}

	score += affinityBonus(terms, instructionTypeKeywords[rec.Type], affinityPoints)

	return score
}
