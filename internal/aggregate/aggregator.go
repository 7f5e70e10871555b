// Package aggregate combines deterministic practice scores, gap results,
// recommendations, and the optional qualitative score into one PillarResult.
package aggregate

import (
	"fmt"
	"math"
	"strings"

	"github.com/microsoft/archeval/internal/catalog"
	"github.com/microsoft/archeval/internal/gaps"
	"github.com/microsoft/archeval/internal/models"
	"github.com/microsoft/archeval/internal/scorer"
)

// Options tune aggregation behavior. The agreement threshold is a default,
// not hard-coded law: it bounds how far the two score sources may diverge
// (in percentage points, both on the 0–100 band) and still be called High
// confidence.
type Options struct {
	AgreementThreshold float64
}

// DefaultOptions returns the standard aggregation settings.
func DefaultOptions() Options {
	return Options{AgreementThreshold: 20}
}

// Aggregate builds the immutable per-pillar artifact. A missing qualitative
// input is not an error: the result degrades to deterministic-only output
// and is marked low-confidence.
func Aggregate(cat *catalog.Catalog, scores []models.PracticeScore, gapResults []models.Gap, recs []models.Recommendation, qual *models.QualitativeInput, opts Options) models.PillarResult {
	if opts.AgreementThreshold <= 0 {
		opts = DefaultOptions()
	}

	maturity := scorer.MaturityPct(scores)
	llmScore := qual.Score()

	result := models.PillarResult{
		Pillar:                   cat.Pillar,
		DeterministicMaturityPct: maturity,
		LLMScore:                 llmScore,
		Confidence:               confidence(maturity, llmScore, opts.AgreementThreshold),
		Subcategories:            make(map[string]models.SubcategoryDetail, len(scores)),
		Recommendations:          recs,
		Gaps:                     gapResults,
		MatchedGapCount:          gaps.MatchedCount(gapResults),
		UnmatchedGapCount:        len(gapResults) - gaps.MatchedCount(gapResults),
		Categories:               categoryBreakdown(cat, scores),
	}

	for _, ps := range scores {
		expected := []string{}
		if def, ok := cat.Practice(ps.Code); ok {
			expected = def.Signals
		}
		result.Subcategories[ps.Code] = models.SubcategoryDetail{
			PracticeScore:    ps,
			HumanSummary:     humanSummary(ps, expected),
			ExpectedConcepts: expected,
			Substantiated:    len(ps.MatchedSignals) > 0,
		}
	}

	return result
}

// humanSummary renders "{status}: {n}/{total} concept(s); {list}" where the
// list names missing concepts for partial or absent coverage, and the present
// concepts for full coverage.
func humanSummary(ps models.PracticeScore, expected []string) string {
	var status string
	switch {
	case ps.Coverage == 0:
		status = "No"
	case ps.Coverage < 1:
		status = "Partial"
	default:
		status = "Full"
	}

	var list string
	if ps.Coverage >= 1 {
		list = "present: " + strings.Join(ps.MatchedSignals, ", ")
	} else {
		matched := make(map[string]struct{}, len(ps.MatchedSignals))
		for _, s := range ps.MatchedSignals {
			matched[s] = struct{}{}
		}
		var missing []string
		for _, s := range expected {
			if _, ok := matched[s]; !ok {
				missing = append(missing, s)
			}
		}
		list = "missing: " + strings.Join(missing, ", ")
	}

	return fmt.Sprintf("%s: %d/%d concept(s); %s", status, len(ps.MatchedSignals), ps.TotalSignals, list)
}

// confidence bands the agreement between the two score sources. Absent
// qualitative input yields Low; agreement within the threshold yields High.
func confidence(maturityPct float64, llmScore *int, threshold float64) models.Confidence {
	if llmScore == nil {
		return models.ConfidenceLow
	}
	if math.Abs(maturityPct-float64(*llmScore)) <= threshold {
		return models.ConfidenceHigh
	}
	return models.ConfidenceMedium
}

// categoryBreakdown averages member practice scores (scaled to 0–100) per
// catalog category, preserving catalog category order.
func categoryBreakdown(cat *catalog.Catalog, scores []models.PracticeScore) []models.CategoryScore {
	if len(cat.Categories) == 0 {
		return nil
	}

	scoreByCode := make(map[string]int, len(scores))
	for _, s := range scores {
		scoreByCode[s.Code] = s.Score
	}

	breakdown := make([]models.CategoryScore, 0, len(cat.Categories))
	for _, category := range cat.Categories {
		if len(category.Codes) == 0 {
			continue
		}
		sum := 0.0
		for _, code := range category.Codes {
			sum += float64(scoreByCode[code]) / 5.0 * 100.0
		}
		pct := sum / float64(len(category.Codes))
		breakdown = append(breakdown, models.CategoryScore{
			Name:    category.Name,
			Percent: math.Round(pct*100) / 100,
			Codes:   category.Codes,
		})
	}
	return breakdown
}
