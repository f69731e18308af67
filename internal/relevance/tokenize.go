// Package relevance implements the heuristic keyword scoring used to rank
// corpus records against a free-text query, plus the query categorizer that
// rides on the same tokenization.
//
// The scoring is intentionally a pragmatic heuristic: it does not attempt
// linguistically correct Arabic tokenization, and the three record kinds are
// scored by deliberately different rules. Scores are only comparable within
// one call over one kind.
package relevance

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize lower-cases the query, splits on whitespace, and drops tokens of
// two runes or fewer.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 2 {
			terms = append(terms, f)
		}
	}
	return terms
}

// containsWord reports whether term occurs in text delimited by word edges.
// Go's regexp \b is ASCII-oriented and misfires on Arabic, so boundaries are
// checked explicitly: the runes adjacent to the match must not be letters or
// digits. Both arguments are assumed already lower-cased.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		if boundaryBefore(text, idx) && boundaryAfter(text, idx+len(term)) {
			return true
		}
		start = idx + len(term)
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[idx:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// countOccurrences counts non-overlapping occurrences of term in text.
func countOccurrences(text, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(text, term)
}

// diminishedContentScore converts a raw occurrence count into points with
// diminishing returns: full value up to 5 occurrences, half a point each
// beyond that, capped at 10 usable occurrences.
func diminishedContentScore(count int) float64 {
	if count > 10 {
		count = 10
	}
	if count > 5 {
		return 5 + float64(count-5)*0.5
	}
	return float64(count)
}

// affinityBonus awards points when any query term overlaps any of the
// record's topical keywords, substring-wise in either direction.
func affinityBonus(terms, keywords []string, points float64) float64 {
	var bonus float64
	for _, term := range terms {
		for _, kw := range keywords {
			if strings.Contains(term, kw) || strings.Contains(kw, term) {
				bonus += points
				break
			}
		}
	}
	return bonus
}
