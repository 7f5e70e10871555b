package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/microsoft/archeval/internal/models"
)

// BuildMarkdownReport renders the scorecard as a markdown document: per-pillar
// domain score table, recommendation table, and gap summary, followed by the
// consolidated cross-pillar recommendations.
func BuildMarkdownReport(card *Scorecard) string {
	var b strings.Builder

	b.WriteString("# Architecture Maturity Assessment\n\n")
	fmt.Fprintf(&b, "Overall deterministic maturity: **%.1f%%**, %s\n\n",
		card.OverallMaturityPct, InterpretMaturity(card.OverallMaturityPct))

	for i := range card.Pillars {
		writePillarMarkdown(&b, &card.Pillars[i])
	}

	b.WriteString("## Cross-Pillar Recommendations\n\n")
	if len(card.CohesiveRecommendations) == 0 {
		b.WriteString("None: no recommendation recurred across pillars.\n")
		return b.String()
	}

	b.WriteString("| Title | Severity | Priority | Pillars | Codes |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, rec := range card.CohesiveRecommendations {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			rec.Title, rec.Severity, rec.Priority,
			strings.Join(rec.SourcePillars, ", "), strings.Join(rec.Codes, ", "))
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writePillarMarkdown(b *strings.Builder, res *models.PillarResult) {
	fmt.Fprintf(b, "## %s\n\n", titleCase(res.Pillar))
	fmt.Fprintf(b, "- Deterministic maturity: %.1f%% (%s)\n",
		res.DeterministicMaturityPct, InterpretMaturity(res.DeterministicMaturityPct))
	if res.LLMScore != nil {
		fmt.Fprintf(b, "- Qualitative score: %d/100\n", *res.LLMScore)
	}
	fmt.Fprintf(b, "- Confidence: %s\n", res.Confidence)
	fmt.Fprintf(b, "- Gaps: %s\n\n", InterpretGapCounts(res.MatchedGapCount, res.UnmatchedGapCount))

	if len(res.Categories) > 0 {
		b.WriteString("| Category | Percent |\n|---|---|\n")
		for _, cat := range res.Categories {
			fmt.Fprintf(b, "| %s | %.1f%% |\n", cat.Name, cat.Percent)
		}
		b.WriteString("\n")
	}

	b.WriteString("| Code | Score | Weight | Summary |\n|---|---|---|---|\n")
	codes := make([]string, 0, len(res.Subcategories))
	for code := range res.Subcategories {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		detail := res.Subcategories[code]
		fmt.Fprintf(b, "| %s | %d/5 | %.2f | %s |\n",
			code, detail.PracticeScore.Score, detail.PracticeScore.Weight, detail.HumanSummary)
	}
	b.WriteString("\n")

	if len(res.Recommendations) > 0 {
		b.WriteString("| Recommendation | Severity | Priority | Impact | Codes |\n|---|---|---|---|---|\n")
		for _, rec := range res.Recommendations {
			impact := ""
			if rec.Impact > 0 {
				impact = fmt.Sprintf("%d", rec.Impact)
			}
			fmt.Fprintf(b, "| %s | %d | %s | %s | %s |\n",
				rec.Title, rec.Severity, rec.Priority, impact, strings.Join(rec.Codes, ", "))
		}
		b.WriteString("\n")
	}
}
