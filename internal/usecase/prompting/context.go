// Package prompting assembles the grounding context and the system prompt
// sent to the generation service.
package prompting

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
	"github.com/awqaf-cloud/waqfrag/internal/relevance"
)

// DefaultContextBudget is the character budget used by the ask flow.
const DefaultContextBudget = 3000

// shortParagraphRunes: paragraphs under this length are included even
// without a query-term hit; headers and one-line summaries carry signal
// disproportionate to their size.
const shortParagraphRunes = 200

var paragraphSplit = regexp.MustCompile(`\n\n+`)

// ExtractContext walks the ranked documents in order and concatenates their
// most query-relevant paragraphs under a character budget. Each document
// contributes a header line; a paragraph is included when it contains any
// query token or is short. A paragraph that would overflow the budget is
// skipped whole, never truncated mid-paragraph. Returns "" for no documents.
func ExtractContext(query string, docs []domain.ScoredDocument, maxLength int) string {
	if len(docs) == 0 {
		return ""
	}

	terms := relevance.Tokenize(query)

	var b strings.Builder
	currentLength := 0

	for _, sd := range docs {
		if currentLength >= maxLength {
			break
		}

		header := "\n\n## " + sd.Document.Title + "\n"
		b.WriteString(header)
		currentLength += utf8.RuneCountInString(header)

		for _, paragraph := range paragraphSplit.Split(sd.Document.Content, -1) {
			if currentLength >= maxLength {
				break
			}

			paragraphLower := strings.ToLower(paragraph)
			relevant := false
			for _, term := range terms {
				if strings.Contains(paragraphLower, term) {
					relevant = true
					break
				}
			}

			if relevant || utf8.RuneCountInString(paragraph) < shortParagraphRunes {
				addition := paragraph + "\n\n"
				if currentLength+utf8.RuneCountInString(addition) <= maxLength {
					b.WriteString(addition)
					currentLength += utf8.RuneCountInString(addition)
				}
			}
		}
	}

	return strings.TrimSpace(b.String())
}
