// Package scorer converts matched-signal coverage into 0–5 practice scores
// and the weighted pillar maturity percentage.
package scorer

import (
	"math"

	"github.com/microsoft/archeval/internal/models"
)

// scoreFunc maps signal coverage in [0,1] to a score in {0..5}.
// Each scoring mode is a pure function dispatched through modeTable.
type scoreFunc func(coverage float64) int

var modeTable = map[models.ScoringMode]scoreFunc{
	models.ModeBinary:       scoreBinary,
	models.ModeProportional: scoreProportional,
	models.ModeTiered:       scoreTiered,
}

func scoreBinary(coverage float64) int {
	if coverage > 0 {
		return 5
	}
	return 0
}

// scoreProportional rounds half-up: coverage 0.5 scores round(2.5) = 3.
func scoreProportional(coverage float64) int {
	return int(math.Floor(coverage*5 + 0.5))
}

// tieredBreakpoints map coverage thresholds to scores; the score is the
// highest tier whose threshold is <= coverage.
var tieredBreakpoints = []struct {
	threshold float64
	score     int
}{
	{1.0, 5},
	{0.8, 4},
	{0.6, 3},
	{0.4, 2},
	{0.2, 1},
	{0.0, 0},
}

func scoreTiered(coverage float64) int {
	for _, tier := range tieredBreakpoints {
		if coverage >= tier.threshold-1e-9 {
			return tier.score
		}
	}
	return 0
}

// Score produces the PracticeScore for one practice given its matched
// signals. A practice with an empty signal list is an invalid catalog entry
// and fails with a ConfigError; the catalog loader rejects those up front,
// so this guard only trips on hand-built definitions.
func Score(practice models.PracticeDefinition, matchedSignals []string) (models.PracticeScore, error) {
	if len(practice.Signals) == 0 {
		return models.PracticeScore{}, &models.ConfigError{
			Pillar:   practice.Code,
			Problems: []string{"practice has an empty signal list"},
		}
	}

	coverage := float64(len(matchedSignals)) / float64(len(practice.Signals))

	mode := practice.Mode
	fn, ok := modeTable[mode]
	if !ok {
		mode = models.ModeProportional
		fn = scoreProportional
	}

	if matchedSignals == nil {
		matchedSignals = []string{}
	}

	return models.PracticeScore{
		Code:           practice.Code,
		Title:          practice.Title,
		Weight:         practice.Weight,
		Score:          fn(coverage),
		Coverage:       coverage,
		Mode:           mode,
		MatchedSignals: matchedSignals,
		TotalSignals:   len(practice.Signals),
	}, nil
}

// MaturityPct computes the pillar's deterministic maturity percentage:
//
//	20 * Σ(weight * score) / Σ(weight)
//
// clamped to [0,100]. This is the single source of truth for the
// "Deterministic Maturity %" figure.
func MaturityPct(scores []models.PracticeScore) float64 {
	totalWeight := 0.0
	weightedScore := 0.0
	for _, s := range scores {
		totalWeight += s.Weight
		weightedScore += s.Weight * float64(s.Score)
	}
	if totalWeight == 0 {
		return 0
	}

	pct := 20 * weightedScore / totalWeight
	return math.Min(100, math.Max(0, pct))
}
