package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Enable Azure Backup", "enable azure backup"},
		{"collapses whitespace", "Enable  Azure\tBackup", "enable azure backup"},
		{"trims trailing punctuation", "Enable Azure Backup!", "enable azure backup"},
		{"trims multiple punctuation", "Use Key Vault.:;", "use key vault"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeTitle(tt.in))
		})
	}
}

func TestMergeCodes(t *testing.T) {
	require.Equal(t, []string{"RE01", "SE02", "SE09"},
		MergeCodes([]string{"SE09", "RE01"}, []string{"SE02", "RE01"}))
	require.Equal(t, []string{"CO03"}, MergeCodes(nil, []string{"CO03"}))
	require.Empty(t, MergeCodes(nil, nil))
	require.NotNil(t, MergeCodes(nil, nil))
}

func TestPriorityRank(t *testing.T) {
	require.Less(t, PriorityCritical.Rank(), PriorityHigh.Rank())
	require.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	require.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	require.Greater(t, Priority("bogus").Rank(), PriorityLow.Rank())
}

func TestSortRecommendations(t *testing.T) {
	recs := []Recommendation{
		{Title: "c", Severity: 2, Priority: PriorityMedium},
		{Title: "a", Severity: 1, Priority: PriorityHigh},
		{Title: "d", Severity: 2, Priority: PriorityHigh, Impact: 4},
		{Title: "b", Severity: 1, Priority: PriorityCritical},
		{Title: "e", Severity: 2, Priority: PriorityHigh, Impact: 8},
	}

	SortRecommendations(recs)

	var titles []string
	for _, r := range recs {
		titles = append(titles, r.Title)
	}
	require.Equal(t, []string{"b", "a", "e", "d", "c"}, titles)
}

func TestSortRecommendations_StableOnTies(t *testing.T) {
	recs := []Recommendation{
		{Title: "first", Severity: 3, Priority: PriorityMedium, Impact: 5},
		{Title: "second", Severity: 3, Priority: PriorityMedium, Impact: 5},
	}

	SortRecommendations(recs)
	require.Equal(t, "first", recs[0].Title)
	require.Equal(t, "second", recs[1].Title)
}
