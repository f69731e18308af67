package domain

// Category classifies a knowledge document by topical area.
type Category string

// Knowledge document categories.
const (
	CategoryLaw            Category = "law"
	CategoryJurisprudence  Category = "jurisprudence"
	CategoryMajalla        Category = "majalla"
	CategoryHistorical     Category = "historical"
	CategoryAdministrative Category = "administrative"
	CategoryReference      Category = "reference"
	// CategoryGeneral is never assigned to a document; it is the default
	// query category when no topical keyword matches.
	CategoryGeneral Category = "general"
)

// CaseType classifies a waqf case record.
type CaseType string

// Waqf case types.
const (
	CaseOwnershipDispute  CaseType = "ownership_dispute"
	CaseBoundaryDispute   CaseType = "boundary_dispute"
	CaseUsageViolation    CaseType = "usage_violation"
	CaseInheritance       CaseType = "inheritance"
	CaseManagementDispute CaseType = "management_dispute"
	CaseEncroachment      CaseType = "encroachment"
)

// InstructionType classifies a ministerial instruction record.
type InstructionType string

// Ministerial instruction types.
const (
	InstructionCircular    InstructionType = "circular"
	InstructionInstruction InstructionType = "instruction"
	InstructionDecision    InstructionType = "decision"
	InstructionRegulation  InstructionType = "regulation"
	InstructionGuideline   InstructionType = "guideline"
)

// SourceKind tags which corpus a merged search result came from.
type SourceKind string

// Corpus source kinds.
const (
	SourceKnowledge   SourceKind = "knowledge"
	SourceCase        SourceKind = "case"
	SourceInstruction SourceKind = "instruction"
)

// KnowledgeDocument is the primary retrieval target: a body of legal or
// historical text with optional free-text tags and an optional precomputed
// embedding. The embedding is kept in its serialized form (a JSON array of
// floats) until a comparison actually needs it.
type KnowledgeDocument struct {
	ID        string
	Title     string
	Content   string
	Category  Category
	Source    string
	Tags      string
	Embedding string
	IsActive  bool
}

// CaseRecord is a waqf court case summary.
type CaseRecord struct {
	ID          string
	Title       string
	Description string
	CaseNumber  string
	CaseType    CaseType
	IsActive    bool
}

// InstructionRecord is a ministerial instruction or circular.
type InstructionRecord struct {
	ID                string
	Title             string
	Content           string
	InstructionNumber string
	Type              InstructionType
	IsActive          bool
}

// ScoredDocument is a knowledge document annotated with a keyword-path
// relevance score. Scores are comparable only within the invocation that
// produced them.
type ScoredDocument struct {
	Document       KnowledgeDocument
	RelevanceScore float64
}

// ScoredItem is a cross-corpus search result. Exactly one of Document, Case,
// Instruction is populated, indicated by Kind.
type ScoredItem struct {
	Kind           SourceKind
	Document       *KnowledgeDocument
	Case           *CaseRecord
	Instruction    *InstructionRecord
	RelevanceScore float64
}

// Title returns the human-readable title of whichever record the item wraps.
func (i ScoredItem) Title() string {
	switch i.Kind {
	case SourceCase:
		return i.Case.Title
	case SourceInstruction:
		return i.Instruction.Title
	default:
		return i.Document.Title
	}
}

// ItemID returns the record's stable identifier.
func (i ScoredItem) ItemID() string {
	switch i.Kind {
	case SourceCase:
		return i.Case.ID
	case SourceInstruction:
		return i.Instruction.ID
	default:
		return i.Document.ID
	}
}
