package reporting

import (
	"fmt"

	"github.com/microsoft/archeval/internal/models"
)

// InterpretMaturity returns a plain-language label for a maturity percentage.
func InterpretMaturity(pct float64) string {
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretConfidence explains what a confidence band means for the reader.
func InterpretConfidence(c models.Confidence) string {
	switch c {
	case models.ConfidenceHigh:
		return "High: deterministic and qualitative scores agree"
	case models.ConfidenceMedium:
		return "Medium: score sources diverge; review the evidence tables"
	default:
		return "Low: qualitative input unavailable; deterministic-only result"
	}
}

// InterpretGapCounts summarizes the matched/unmatched gap split.
func InterpretGapCounts(matched, unmatched int) string {
	if matched == 0 {
		return fmt.Sprintf("No anti-patterns detected (%d patterns checked)", matched+unmatched)
	}
	return fmt.Sprintf("%d anti-pattern(s) detected, %d checked pattern(s) clean", matched, unmatched)
}

// FormatPillarHeadline produces the one-line summary for a pillar result.
func FormatPillarHeadline(res *models.PillarResult) string {
	llm := "n/a"
	if res.LLMScore != nil {
		llm = fmt.Sprintf("%d/100", *res.LLMScore)
	}
	return fmt.Sprintf("%s: maturity %.1f%% (%s) | qualitative %s | confidence %s",
		res.Pillar, res.DeterministicMaturityPct, InterpretMaturity(res.DeterministicMaturityPct),
		llm, res.Confidence)
}
