package relevance

import "github.com/awqaf-cloud/waqfrag/internal/domain"

// Topical keyword tables. Static by design: the tables encode editorial
// domain knowledge and are not hot-reloadable configuration.

var categoryKeywords = map[domain.Category][]string{
	domain.CategoryLaw:            {"قانون", "تشريع", "نظام", "مادة"},
	domain.CategoryJurisprudence:  {"فقه", "شرع", "حكم", "فتوى"},
	domain.CategoryMajalla:        {"مجلة", "عدلية", "عثماني"},
	domain.CategoryHistorical:     {"تاريخ", "عثماني", "وثيقة"},
	domain.CategoryAdministrative: {"إدارة", "وزارة", "مجلس", "ناظر"},
}

var caseTypeKeywords = map[domain.CaseType][]string{
	domain.CaseOwnershipDispute:  {"ملكية", "نزاع", "تملك"},
	domain.CaseBoundaryDispute:   {"حدود", "حد", "تخطيط"},
	domain.CaseUsageViolation:    {"مخالفة", "استخدام", "تجاوز"},
	domain.CaseInheritance:       {"ميراث", "ورثة", "تركة"},
	domain.CaseManagementDispute: {"إدارة", "ناظر", "متولي"},
	domain.CaseEncroachment:      {"تعدي", "اعتداء", "احتلال"},
}

var instructionTypeKeywords = map[domain.InstructionType][]string{
	domain.InstructionCircular:    {"تعميم", "منشور"},
	domain.InstructionInstruction: {"تعليمات", "توجيه"},
	domain.InstructionDecision:    {"قرار", "حكم"},
	domain.InstructionRegulation:  {"لائحة", "نظام"},
	domain.InstructionGuideline:   {"دليل", "إرشاد"},
}
