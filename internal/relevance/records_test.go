package relevance

import (
	"testing"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

func TestScoreCase(t *testing.T) {
	rec := domain.CaseRecord{
		ID:          "c1",
		Title:       "نزاع ملكية أرض وقفية",
		Description: "نزاع حول ملكية قطعة أرض وقفية في نابلس",
		CaseNumber:  "245/2019",
		CaseType:    domain.CaseOwnershipDispute,
	}

	t.Run("title and content matches accumulate", func(t *testing.T) {
		// "ملكية": title +5, case type affinity +3, and raw occurrence
		// counts over title+description+number (2 occurrences) = 10.
		if got := ScoreCase("ملكية", rec); got != 10 {
			t.Errorf("ScoreCase = %v, want 10", got)
		}
	})

	t.Run("case number match", func(t *testing.T) {
		// "245" substring of the case number: flat +10, plus 1 raw
		// occurrence in the concatenated text.
		if got := ScoreCase("245", rec); got != 11 {
			t.Errorf("ScoreCase = %v, want 11", got)
		}
	})

	t.Run("no diminishing returns in this tier", func(t *testing.T) {
		repeated := domain.CaseRecord{
			Title:       "heading",
			Description: "term term term term term term term",
			CaseNumber:  "1/2020",
		}
		// 7 raw occurrences stay 7 points, unlike the knowledge tier.
		if got := ScoreCase("term", repeated); got != 7 {
			t.Errorf("ScoreCase = %v, want 7", got)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		if got := ScoreCase("", rec); got != 0 {
			t.Errorf("ScoreCase = %v, want 0", got)
		}
	})
}

func TestScoreInstruction(t *testing.T) {
	rec := domain.InstructionRecord{
		ID:                "i1",
		Title:             "تعميم بشأن تأجير العقارات الوقفية",
		Content:           "يمنع تأجير العقارات الوقفية دون موافقة الوزارة",
		InstructionNumber: "7/2021",
		Type:              domain.InstructionCircular,
	}

	t.Run("instruction number match", func(t *testing.T) {
		// "2021" substring of the number: flat +10 plus 1 occurrence.
		if got := ScoreInstruction("2021", rec); got != 11 {
			t.Errorf("ScoreInstruction = %v, want 11", got)
		}
	})

	t.Run("type affinity", func(t *testing.T) {
		// "تعميم" is a circular-type keyword and also hits the title:
		// +5 title, +3 affinity, +1 occurrence.
		if got := ScoreInstruction("تعميم", rec); got != 9 {
			t.Errorf("ScoreInstruction = %v, want 9", got)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		if got := ScoreInstruction("مدرسة", rec); got != 0 {
			t.Errorf("ScoreInstruction = %v, want 0", got)
		}
	})
}
