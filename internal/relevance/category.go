package relevance

import (
	"strings"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// queryCategories is evaluated in order; the first category with a matching
// keyword wins. The order is part of the contract (it is the only tie-break)
// and must stay stable for reproducible categorization.
var queryCategories = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryLaw, []string{"قانون", "تشريع", "نظام", "مادة", "قرار"}},
	{domain.CategoryJurisprudence, []string{"فقه", "شرع", "حكم", "فتوى", "مذهب", "دليل"}},
	{domain.CategoryMajalla, []string{"مجلة", "عدلية", "عثماني"}},
	{domain.CategoryHistorical, []string{"تاريخ", "عثماني", "وثيقة", "أرشيف"}},
	{domain.CategoryAdministrative, []string{"إدارة", "وزارة", "مجلس", "ناظر", "إجراء"}},
}

// CategorizeQuery assigns a topical category to a free-text query by
// case-insensitive substring matching. Returns CategoryGeneral when no
// keyword matches.
func CategorizeQuery(query string) domain.Category {
	queryLower := strings.ToLower(query)

	for _, c := range queryCategories {
		for _, kw := range c.keywords {
			if strings.Contains(queryLower, kw) {
				return c.category
			}
		}
	}

	return domain.CategoryGeneral
}
