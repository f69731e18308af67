// Package feedback aggregates rating signals over past interactions to
// surface recurring answer-quality issues and improvement suggestions.
package feedback

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// Repository reads the historical interaction log.
type Repository interface {
	ListNegative(ctx context.Context, limit int) ([]domain.Interaction, error)
}

// analysisWindow bounds how many recent negative interactions one pass reads.
const analysisWindow = 100

// shortAnswerRunes: answers under this length count as abnormally short.
const shortAnswerRunes = 100

// Suggestion trigger ratios over the negative total.
const (
	missingSourcesRatio = 0.3
	shortAnswersRatio   = 0.2
)

// Known answer-quality issues matched against free-text feedback.
const (
	IssueInaccurate     = "غير دقيق"
	IssueIncomplete     = "غير كامل"
	IssueMissingSources = "لا يوجد مصادر"
	IssueUnclear        = "غير واضح"
	IssueOffTopic       = "خارج الموضوع"
)

// issueKeywords maps each issue to the feedback phrases that indicate it.
// Evaluated in a fixed order so pattern output stays stable.
var issueKeywords = []struct {
	issue    string
	keywords []string
}{
	{IssueInaccurate, []string{"غير دقيق", "خطأ", "غلط", "مغلوط"}},
	{IssueIncomplete, []string{"ناقص", "غير كامل", "قليل", "مختصر"}},
	{IssueMissingSources, []string{"مصادر", "مراجع", "دليل", "إثبات"}},
	{IssueUnclear, []string{"غير واضح", "مبهم", "معقد", "صعب"}},
	{IssueOffTopic, []string{"خارج", "غير متعلق", "لا علاقة"}},
}

// IssueCount is one recognized issue with how many negative interactions
// mentioned it.
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// Patterns summarizes one analysis pass over negative interactions.
type Patterns struct {
	TotalNegative  int          `json:"total_negative"`
	WithFeedback   int          `json:"with_feedback"`
	WithoutSources int          `json:"without_sources"`
	ShortAnswers   int          `json:"short_answers"`
	CommonIssues   []IssueCount `json:"common_issues"`
}

// Report bundles the patterns with the threshold-triggered suggestions.
type Report struct {
	Patterns    Patterns `json:"patterns"`
	Suggestions []string `json:"suggestions"`
}

// Service runs the read-only analytics pass.
type Service struct {
	repo Repository
}

// New creates a feedback analytics service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// AnalyzeNegative aggregates the most recent negative interactions into
// pattern counts.
func (s *Service) AnalyzeNegative(ctx context.Context) (Patterns, error) {
	negatives, err := s.repo.ListNegative(ctx, analysisWindow)
	if err != nil {
		return Patterns{}, fmt.Errorf("list negative interactions: %w", err)
	}
	return analyze(negatives), nil
}

func analyze(negatives []domain.Interaction) Patterns {
	p := Patterns{TotalNegative: len(negatives)}

	var feedbackTexts []string
	for _, n := range negatives {
		if n.Feedback != "" {
			p.WithFeedback++
			feedbackTexts = append(feedbackTexts, strings.ToLower(n.Feedback))
		}
		if len(n.SourceIDs) == 0 {
			p.WithoutSources++
		}
		if utf8.RuneCountInString(n.Answer) < shortAnswerRunes {
			p.ShortAnswers++
		}
	}

	for _, ik := range issueKeywords {
		count := 0
		for _, text := range feedbackTexts {
			for _, kw := range ik.keywords {
				if strings.Contains(text, kw) {
					count++
					break
				}
			}
		}
		if count > 0 {
			p.CommonIssues = append(p.CommonIssues, IssueCount{Issue: ik.issue, Count: count})
		}
	}

	return p
}

// Suggest produces improvement suggestions from the analyzed patterns:
// fixed texts triggered by the missing-sources and short-answer ratios and
// by the presence of accuracy/clarity issues.
func (s *Service) Suggest(ctx context.Context) (Report, error) {
	patterns, err := s.AnalyzeNegative(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{Patterns: patterns, Suggestions: suggest(patterns)}, nil
}

func suggest(p Patterns) []string {
	var suggestions []string
	total := float64(p.TotalNegative)

	if total > 0 && float64(p.WithoutSources) > total*missingSourcesRatio {
		suggestions = append(suggestions,
			"زيادة عدد المصادر المسترجعة من قاعدة المعرفة",
			"تحسين خوارزمية البحث لإيجاد مصادر أكثر صلة",
		)
	}
	if total > 0 && float64(p.ShortAnswers) > total*shortAnswersRatio {
		suggestions = append(suggestions,
			"تحسين التوجيهات لتشجيع إجابات أكثر تفصيلاً",
			"زيادة حد السياق المستخرج من الوثائق",
		)
	}
	if p.hasIssue(IssueInaccurate) {
		suggestions = append(suggestions,
			"مراجعة جودة المحتوى في قاعدة المعرفة",
			"إضافة المزيد من المراجع الموثوقة",
		)
	}
	if p.hasIssue(IssueUnclear) {
		suggestions = append(suggestions,
			"تحسين التوجيهات لتشجيع إجابات أكثر وضوحاً",
			"إضافة أمثلة توضيحية في الإجابات",
		)
	}
	return suggestions
}

func (p Patterns) hasIssue(issue string) bool {
	for _, ic := range p.CommonIssues {
		if ic.Issue == issue {
			return true
		}
	}
	return false
}
