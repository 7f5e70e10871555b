package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/microsoft/archeval/internal/models"
)

// WriteTables renders the tabular report for one pillar result: practice
// score table, recommendation table, and gap summary table.
func WriteTables(b *strings.Builder, res *models.PillarResult) {
	b.WriteString(FormatPillarHeadline(res))
	b.WriteString("\n\n")

	writePracticeTable(b, res)
	writeRecommendationTable(b, res.Recommendations)
	writeGapTable(b, res)
}

func writePracticeTable(b *strings.Builder, res *models.PillarResult) {
	codes := make([]string, 0, len(res.Subcategories))
	for code := range res.Subcategories {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	const titleWidth = 44
	b.WriteString("Practice Scores\n")
	fmt.Fprintf(b, "%s  %s  %s  %s  %s\n",
		padRight("Code", 5), padRight("Title", titleWidth),
		padRight("Score", 5), padRight("Weight", 6), "Summary")

	for _, code := range codes {
		detail := res.Subcategories[code]
		ps := detail.PracticeScore
		fmt.Fprintf(b, "%s  %s  %s  %s  %s\n",
			padRight(code, 5),
			padRight(truncate(ps.Title, titleWidth), titleWidth),
			padRight(fmt.Sprintf("%d/5", ps.Score), 5),
			padRight(fmt.Sprintf("%.2f", ps.Weight), 6),
			detail.HumanSummary)
	}
	b.WriteString("\n")
}

func writeRecommendationTable(b *strings.Builder, recs []models.Recommendation) {
	b.WriteString("Recommendations\n")
	if len(recs) == 0 {
		b.WriteString("  (none)\n\n")
		return
	}

	const titleWidth = 52
	fmt.Fprintf(b, "%s  %s  %s  %s  %s  %s\n",
		padRight("Sev", 3), padRight("Priority", 8), padRight("Title", titleWidth),
		padRight("Effort", 6), padRight("Codes", 12), "Source")

	for _, rec := range recs {
		fmt.Fprintf(b, "%s  %s  %s  %s  %s  %s\n",
			padRight(fmt.Sprintf("%d", rec.Severity), 3),
			padRight(string(rec.Priority), 8),
			padRight(truncate(rec.Title, titleWidth), titleWidth),
			padRight(string(rec.Effort), 6),
			padRight(strings.Join(rec.Codes, ","), 12),
			rec.Source)
	}
	b.WriteString("\n")
}

func writeGapTable(b *strings.Builder, res *models.PillarResult) {
	fmt.Fprintf(b, "Gap Summary: %s\n", InterpretGapCounts(res.MatchedGapCount, res.UnmatchedGapCount))
	for _, gap := range res.Gaps {
		status := "clean"
		evidence := ""
		if gap.Matched {
			status = "MATCHED"
			evidence = ", evidence: " + strings.Join(gap.MatchedPatterns, "; ")
		}
		fmt.Fprintf(b, "  %s  %s (%s)%s\n",
			padRight(status, 7), gap.Label, gap.PracticeCode, evidence)
	}
	b.WriteString("\n")
}

// truncate shortens s to maxLen runes, replacing the last rune with "…" if needed.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
