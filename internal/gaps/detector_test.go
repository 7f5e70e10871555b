package gaps

import (
	"testing"

	"github.com/microsoft/archeval/internal/document"
	"github.com/microsoft/archeval/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDetect_MatchedGapRecordsEvidence(t *testing.T) {
	doc := document.New("Currently there is no backup strategy for the database tier.")
	defs := []models.GapDefinition{
		{
			ID:            "gap_no_backup_dr",
			Label:         "No backup or disaster recovery",
			MatchPatterns: []string{"no backup", "no disaster recovery"},
			PracticeCode:  "RE05",
		},
	}

	results := Detect(doc, defs)
	require.Len(t, results, 1)

	gap := results[0]
	require.True(t, gap.Matched)
	require.Equal(t, []string{"no backup"}, gap.MatchedPatterns)
	require.Equal(t, "RE05", gap.PracticeCode)
}

func TestDetect_EvidenceKeepsCatalogOrder(t *testing.T) {
	doc := document.New("no disaster recovery plan and no backup either")
	defs := []models.GapDefinition{
		{
			ID:            "gap_no_backup_dr",
			Label:         "No backup or disaster recovery",
			MatchPatterns: []string{"no backup", "no disaster recovery"},
		},
	}

	results := Detect(doc, defs)
	require.Equal(t, []string{"no backup", "no disaster recovery"}, results[0].MatchedPatterns)
}

func TestDetect_UnmatchedGapsRetained(t *testing.T) {
	doc := document.New("fully replicated across regions with tested runbooks")
	defs := []models.GapDefinition{
		{ID: "gap_single_region", Label: "Single region", MatchPatterns: []string{"single region"}},
		{ID: "gap_no_monitoring", Label: "No monitoring", MatchPatterns: []string{"no monitoring"}},
	}

	results := Detect(doc, defs)
	require.Len(t, results, 2)
	for _, gap := range results {
		require.False(t, gap.Matched)
		require.Empty(t, gap.MatchedPatterns)
	}
	require.Equal(t, 0, MatchedCount(results))
}

func TestMatchedCount(t *testing.T) {
	list := []models.Gap{
		{ID: "a", Matched: true},
		{ID: "b", Matched: false},
		{ID: "c", Matched: true},
	}
	require.Equal(t, 2, MatchedCount(list))
}
