package corpus

import (
	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// Hash field names shared by all three record kinds.
const (
	fieldTitle    = "title"
	fieldContent  = "content"
	fieldCategory = "category"
	fieldSource   = "source"
	fieldTags     = "tags"
	// Embeddings stay in their serialized JSON-array form; they are parsed
	// only when a similarity comparison needs them.
	fieldEmbedding = "embedding"
	fieldNumber    = "number"
	fieldType      = "type"
	fieldActive    = "is_active"
	activeTrue     = "1"
	activeFalse    = "0"
)

func activeFlag(active bool) string {
	if active {
		return activeTrue
	}
	return activeFalse
}

func buildKnowledgeFields(doc domain.KnowledgeDocument) map[string]string {
	return map[string]string{
		fieldTitle:     doc.Title,
		fieldContent:   doc.Content,
		fieldCategory:  string(doc.Category),
		fieldSource:    doc.Source,
		fieldTags:      doc.Tags,
		fieldEmbedding: doc.Embedding,
		fieldActive:    activeFlag(doc.IsActive),
	}
}

func parseKnowledgeFields(id string, m map[string]string) domain.KnowledgeDocument {
	return domain.KnowledgeDocument{
		ID:        id,
		Title:     m[fieldTitle],
		Content:   m[fieldContent],
		Category:  domain.Category(m[fieldCategory]),
		Source:    m[fieldSource],
		Tags:      m[fieldTags],
		Embedding: m[fieldEmbedding],
		IsActive:  m[fieldActive] == activeTrue,
	}
}

func buildCaseFields(c domain.CaseRecord) map[string]string {
	return map[string]string{
		fieldTitle:   c.Title,
		fieldContent: c.Description,
		fieldNumber:  c.CaseNumber,
		fieldType:    string(c.CaseType),
		fieldActive:  activeFlag(c.IsActive),
	}
}

func parseCaseFields(id string, m map[string]string) domain.CaseRecord {
	return domain.CaseRecord{
		ID:          id,
		Title:       m[fieldTitle],
		Description: m[fieldContent],
		CaseNumber:  m[fieldNumber],
		CaseType:    domain.CaseType(m[fieldType]),
		IsActive:    m[fieldActive] == activeTrue,
	}
}

func buildInstructionFields(in domain.InstructionRecord) map[string]string {
	return map[string]string{
		fieldTitle:   in.Title,
		fieldContent: in.Content,
		fieldNumber:  in.InstructionNumber,
		fieldType:    string(in.Type),
		fieldActive:  activeFlag(in.IsActive),
	}
}

func parseInstructionFields(id string, m map[string]string) domain.InstructionRecord {
	return domain.InstructionRecord{
		ID:                id,
		Title:             m[fieldTitle],
		Content:           m[fieldContent],
		InstructionNumber: m[fieldNumber],
		Type:              domain.InstructionType(m[fieldType]),
		IsActive:          m[fieldActive] == activeTrue,
	}
}
