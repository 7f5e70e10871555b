// Package synthesis derives deterministic recommendations from low practice
// scores and matched gaps, and merges them with the externally supplied
// qualitative recommendation set.
package synthesis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/microsoft/archeval/internal/catalog"
	"github.com/microsoft/archeval/internal/models"
)

// lowScoreThreshold marks a practice as unmet: score <= 2 generates a
// deterministic recommendation.
const lowScoreThreshold = 2

// Synthesize builds the merged, ordered recommendation list for one pillar.
//
// Deterministic recommendations are generated per matched gap and per
// low-scoring practice. External recommendations are accepted as-is after
// defaulting missing fields; when a deterministic and an external
// recommendation share a normalized title, the external one wins (it carries
// richer reasoning) but inherits the union of the deterministic codes.
func Synthesize(cat *catalog.Catalog, scores []models.PracticeScore, gapResults []models.Gap, external []models.Recommendation) []models.Recommendation {
	severityByCode := rankSeverities(scores)
	scoreByCode := make(map[string]models.PracticeScore, len(scores))
	for _, s := range scores {
		scoreByCode[s.Code] = s
	}

	var merged []models.Recommendation
	index := make(map[string]int)

	add := func(rec models.Recommendation) {
		key := models.NormalizeTitle(rec.Title)
		if pos, ok := index[key]; ok {
			existing := &merged[pos]
			codes := models.MergeCodes(existing.Codes, rec.Codes)
			if rec.Source == models.SourceLLM && existing.Source == models.SourceDeterministic {
				rec.Codes = codes
				merged[pos] = rec
			} else {
				existing.Codes = codes
			}
			return
		}
		index[key] = len(merged)
		merged = append(merged, rec)
	}

	for _, ps := range scores {
		if ps.Score > lowScoreThreshold {
			continue
		}
		add(practiceRecommendation(cat, ps, severityByCode[ps.Code]))
	}

	for _, gap := range gapResults {
		if !gap.Matched {
			continue
		}
		severity := 3
		if s, unmet := severityByCode[gap.PracticeCode]; unmet {
			severity = s
		}
		add(gapRecommendation(cat, gap, severity, scoreByCode))
	}

	for _, rec := range external {
		add(normalizeExternal(rec))
	}

	models.SortRecommendations(merged)
	return merged
}

// rankSeverities assigns severities to unmet practices by weight rank: the
// highest-weighted unmet practice gets severity 1 (Critical), the next 2,
// capped at 5. Equal weights keep catalog order.
func rankSeverities(scores []models.PracticeScore) map[string]int {
	var unmet []models.PracticeScore
	for _, s := range scores {
		if s.Score <= lowScoreThreshold {
			unmet = append(unmet, s)
		}
	}
	sort.SliceStable(unmet, func(a, b int) bool {
		return unmet[a].Weight > unmet[b].Weight
	})

	severities := make(map[string]int, len(unmet))
	for i, s := range unmet {
		severity := i + 1
		if severity > 5 {
			severity = 5
		}
		severities[s.Code] = severity
	}
	return severities
}

// pointsRecoverable estimates the maturity points gained if the practice
// reached a score of 5: weight * (5 - score) * 20.
func pointsRecoverable(ps models.PracticeScore) float64 {
	return ps.Weight * float64(5-ps.Score) * 20
}

func practiceRecommendation(cat *catalog.Catalog, ps models.PracticeScore, severity int) models.Recommendation {
	var missing []string
	if def, ok := cat.Practice(ps.Code); ok {
		matched := make(map[string]struct{}, len(ps.MatchedSignals))
		for _, s := range ps.MatchedSignals {
			matched[s] = struct{}{}
		}
		for _, s := range def.Signals {
			if _, ok := matched[s]; !ok {
				missing = append(missing, s)
			}
		}
	}

	reasoning := fmt.Sprintf("Deterministic scan scored %s at %d/5 (%d of %d expected concepts found).",
		ps.Code, ps.Score, len(ps.MatchedSignals), ps.TotalSignals)
	guidance := fmt.Sprintf("Review the architecture against %s.", ps.Title)
	if len(missing) > 0 {
		guidance = fmt.Sprintf("Address the missing concepts: %s.", strings.Join(missing, ", "))
	}

	return models.Recommendation{
		Title:             fmt.Sprintf("Strengthen %s", ps.Title),
		Reasoning:         reasoning,
		Recommendation:    guidance,
		Priority:          priorityForSeverity(severity),
		Severity:          severity,
		Effort:            effortForScore(ps.Score),
		Codes:             []string{ps.Code},
		Source:            models.SourceDeterministic,
		PointsRecoverable: pointsRecoverable(ps),
	}
}

func gapRecommendation(cat *catalog.Catalog, gap models.Gap, severity int, scoreByCode map[string]models.PracticeScore) models.Recommendation {
	reasoning := fmt.Sprintf("Anti-pattern detected in the architecture text: %s.",
		strings.Join(gap.MatchedPatterns, "; "))

	guidance := fmt.Sprintf("Remediate the condition %q.", gap.Label)
	for _, def := range cat.Gaps {
		if def.ID == gap.ID && len(def.HintKeywords) > 0 {
			guidance = fmt.Sprintf("Introduce: %s.", strings.Join(def.HintKeywords, ", "))
			break
		}
	}

	var codes []string
	points := 0.0
	if gap.PracticeCode != "" {
		codes = []string{gap.PracticeCode}
		if ps, ok := scoreByCode[gap.PracticeCode]; ok {
			points = pointsRecoverable(ps)
		}
	}

	return models.Recommendation{
		Title:             fmt.Sprintf("Resolve gap: %s", gap.Label),
		Reasoning:         reasoning,
		Recommendation:    guidance,
		Priority:          priorityForSeverity(severity),
		Severity:          severity,
		Effort:            models.EffortMedium,
		Codes:             codes,
		Source:            models.SourceDeterministic,
		PointsRecoverable: points,
	}
}

// normalizeExternal fills documented defaults on an externally supplied
// recommendation. The synthesizer never drops an external recommendation
// solely for missing optional fields.
func normalizeExternal(rec models.Recommendation) models.Recommendation {
	rec.Source = models.SourceLLM

	switch rec.Priority {
	case models.PriorityCritical, models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		rec.Priority = models.PriorityMedium
	}

	switch rec.Effort {
	case models.EffortLow, models.EffortMedium, models.EffortHigh:
	default:
		rec.Effort = models.EffortMedium
	}

	if rec.Impact < 0 {
		rec.Impact = 0
	} else if rec.Impact > 10 {
		rec.Impact = 10
	}

	if rec.Severity < 1 || rec.Severity > 5 {
		rec.Severity = deriveSeverity(rec)
	}

	if rec.Codes == nil {
		rec.Codes = []string{}
	}
	return rec
}

// deriveSeverity infers a severity for external recommendations that do not
// carry one: first from priority, then from impact, defaulting to 3.
func deriveSeverity(rec models.Recommendation) int {
	switch rec.Priority {
	case models.PriorityCritical:
		return 1
	case models.PriorityHigh:
		return 2
	case models.PriorityLow:
		return 4
	}
	switch {
	case rec.Impact >= 9:
		return 1
	case rec.Impact >= 7:
		return 2
	case rec.Impact >= 5:
		return 3
	case rec.Impact >= 3:
		return 4
	case rec.Impact > 0:
		return 5
	}
	return 3
}

func priorityForSeverity(severity int) models.Priority {
	switch {
	case severity <= 1:
		return models.PriorityCritical
	case severity == 2:
		return models.PriorityHigh
	case severity <= 4:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func effortForScore(score int) models.Effort {
	if score == 0 {
		return models.EffortHigh
	}
	return models.EffortMedium
}
