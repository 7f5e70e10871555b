package aggregate

import (
	"testing"

	"github.com/microsoft/archeval/internal/catalog"
	"github.com/microsoft/archeval/internal/models"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := &catalog.Catalog{
		Pillar: "reliability",
		Practices: []models.PracticeDefinition{
			{Code: "RE01", Title: "Redundancy", Weight: 0.6, Mode: models.ModeProportional,
				Signals: []string{"multi-region", "availability zone"}},
			{Code: "RE02", Title: "Recovery", Weight: 0.4, Mode: models.ModeProportional,
				Signals: []string{"backup", "failover"}},
		},
		Categories: []catalog.Category{
			{Name: "Resilience", Codes: []string{"RE01"}},
			{Name: "Continuity", Codes: []string{"RE02"}},
		},
	}
	require.NoError(t, c.Validate())
	return c
}

func fullScore(code string, weight float64, matched []string, total int, s int) models.PracticeScore {
	return models.PracticeScore{
		Code:           code,
		Weight:         weight,
		Score:          s,
		Coverage:       float64(len(matched)) / float64(total),
		MatchedSignals: matched,
		TotalSignals:   total,
	}
}

func intPtr(v int) *int { return &v }

func TestAggregate_DeterministicOnly(t *testing.T) {
	cat := testCatalog(t)
	scores := []models.PracticeScore{
		fullScore("RE01", 0.6, []string{"multi-region", "availability zone"}, 2, 5),
		fullScore("RE02", 0.4, nil, 2, 0),
	}

	result := Aggregate(cat, scores, nil, nil, nil, DefaultOptions())

	require.Equal(t, "reliability", result.Pillar)
	require.InDelta(t, 60.0, result.DeterministicMaturityPct, 1e-9)
	require.Nil(t, result.LLMScore)
	require.Equal(t, models.ConfidenceLow, result.Confidence)
}

func TestAggregate_ConfidenceBands(t *testing.T) {
	tests := []struct {
		name string
		qual *models.QualitativeInput
		want models.Confidence
	}{
		{"no qualitative input", nil, models.ConfidenceLow},
		{"agreement within threshold", &models.QualitativeInput{OverallScore: intPtr(75)}, models.ConfidenceHigh},
		{"agreement at threshold boundary", &models.QualitativeInput{OverallScore: intPtr(64)}, models.ConfidenceHigh},
		{"divergent sources", &models.QualitativeInput{OverallScore: intPtr(40)}, models.ConfidenceMedium},
	}

	cat := testCatalog(t)
	// Maturity is 84%: 20 * (0.6*5 + 0.4*3).
	scores := []models.PracticeScore{
		fullScore("RE01", 0.6, []string{"multi-region", "availability zone"}, 2, 5),
		fullScore("RE02", 0.4, []string{"backup"}, 2, 3),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Aggregate(cat, scores, nil, nil, tt.qual, DefaultOptions())
			require.Equal(t, tt.want, result.Confidence)
		})
	}
}

func TestAggregate_SubcategoryDetails(t *testing.T) {
	cat := testCatalog(t)
	scores := []models.PracticeScore{
		fullScore("RE01", 0.6, []string{"multi-region"}, 2, 3),
		fullScore("RE02", 0.4, nil, 2, 0),
	}

	result := Aggregate(cat, scores, nil, nil, nil, DefaultOptions())
	require.Len(t, result.Subcategories, 2)

	partial := result.Subcategories["RE01"]
	require.True(t, partial.Substantiated)
	require.Equal(t, "Partial: 1/2 concept(s); missing: availability zone", partial.HumanSummary)
	require.Equal(t, []string{"multi-region", "availability zone"}, partial.ExpectedConcepts)

	absent := result.Subcategories["RE02"]
	require.False(t, absent.Substantiated)
	require.Equal(t, "No: 0/2 concept(s); missing: backup, failover", absent.HumanSummary)
}

func TestAggregate_FullCoverageSummaryListsPresent(t *testing.T) {
	cat := testCatalog(t)
	scores := []models.PracticeScore{
		fullScore("RE01", 0.6, []string{"multi-region", "availability zone"}, 2, 5),
		fullScore("RE02", 0.4, []string{"backup", "failover"}, 2, 5),
	}

	result := Aggregate(cat, scores, nil, nil, nil, DefaultOptions())
	require.Equal(t, "Full: 2/2 concept(s); present: multi-region, availability zone",
		result.Subcategories["RE01"].HumanSummary)
}

func TestAggregate_GapCounts(t *testing.T) {
	cat := testCatalog(t)
	scores := []models.PracticeScore{
		fullScore("RE01", 0.6, nil, 2, 0),
		fullScore("RE02", 0.4, nil, 2, 0),
	}
	gapResults := []models.Gap{
		{ID: "a", Matched: true},
		{ID: "b", Matched: false},
		{ID: "c", Matched: true},
	}

	result := Aggregate(cat, scores, gapResults, nil, nil, DefaultOptions())
	require.Equal(t, 2, result.MatchedGapCount)
	require.Equal(t, 1, result.UnmatchedGapCount)
}

func TestAggregate_CategoryBreakdown(t *testing.T) {
	cat := testCatalog(t)
	scores := []models.PracticeScore{
		fullScore("RE01", 0.6, []string{"multi-region", "availability zone"}, 2, 5),
		fullScore("RE02", 0.4, []string{"backup"}, 2, 3),
	}

	result := Aggregate(cat, scores, nil, nil, nil, DefaultOptions())
	require.Len(t, result.Categories, 2)
	require.Equal(t, "Resilience", result.Categories[0].Name)
	require.InDelta(t, 100.0, result.Categories[0].Percent, 1e-9)
	require.Equal(t, "Continuity", result.Categories[1].Name)
	require.InDelta(t, 60.0, result.Categories[1].Percent, 1e-9)
}

func TestAggregate_ZeroThresholdFallsBackToDefault(t *testing.T) {
	cat := testCatalog(t)
	scores := []models.PracticeScore{
		fullScore("RE01", 0.6, []string{"multi-region", "availability zone"}, 2, 5),
		fullScore("RE02", 0.4, []string{"backup"}, 2, 3),
	}
	qual := &models.QualitativeInput{OverallScore: intPtr(70)}

	result := Aggregate(cat, scores, nil, nil, qual, Options{})
	require.Equal(t, models.ConfidenceHigh, result.Confidence)
}
