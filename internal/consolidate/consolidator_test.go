package consolidate

import (
	"testing"

	"github.com/microsoft/archeval/internal/models"
	"github.com/stretchr/testify/require"
)

func pillarResult(pillar string, recs ...models.Recommendation) models.PillarResult {
	return models.PillarResult{Pillar: pillar, Recommendations: recs}
}

func TestConsolidate_SharedTitleAcrossPillars(t *testing.T) {
	results := []models.PillarResult{
		pillarResult("reliability", models.Recommendation{
			Title:     "Enable zone redundancy",
			Reasoning: "Single zone deployment risks outage.",
			Severity:  2,
			Priority:  models.PriorityHigh,
			Codes:     []string{"RE05"},
		}),
		pillarResult("performance", models.Recommendation{
			Title:     "Enable Zone Redundancy.",
			Reasoning: "Zone placement also balances load.",
			Severity:  3,
			Priority:  models.PriorityMedium,
			Codes:     []string{"PE03"},
		}),
	}

	cohesive := Consolidate(results, DefaultOptions())
	require.Len(t, cohesive, 1)

	rec := cohesive[0]
	require.Equal(t, "Enable zone redundancy", rec.Title)
	require.Equal(t, []string{"performance", "reliability"}, rec.SourcePillars)
	require.Equal(t, []string{"PE03", "RE05"}, rec.Codes)
	require.Len(t, rec.CrossPillarConsiderations, 2)
}

func TestConsolidate_SharedServiceAcrossPillars(t *testing.T) {
	results := []models.PillarResult{
		pillarResult("security", models.Recommendation{
			Title:        "Move secrets into Key Vault",
			Severity:     1,
			Priority:     models.PriorityCritical,
			AzureService: "Azure Key Vault",
			Codes:        []string{"SE09"},
		}),
		pillarResult("operational", models.Recommendation{
			Title:        "Automate certificate renewal",
			Severity:     3,
			Priority:     models.PriorityMedium,
			AzureService: "Azure Key Vault",
			Codes:        []string{"OE07"},
		}),
	}

	cohesive := Consolidate(results, DefaultOptions())
	require.Len(t, cohesive, 1)
	require.Equal(t, []string{"operational", "security"}, cohesive[0].SourcePillars)
	require.Equal(t, []string{"OE07", "SE09"}, cohesive[0].Codes)
}

func TestConsolidate_ServiceGroupingDisabled(t *testing.T) {
	results := []models.PillarResult{
		pillarResult("security", models.Recommendation{
			Title: "Move secrets into Key Vault", AzureService: "Azure Key Vault"}),
		pillarResult("operational", models.Recommendation{
			Title: "Automate certificate renewal", AzureService: "Azure Key Vault"}),
	}

	cohesive := Consolidate(results, Options{GroupByService: false})
	require.Empty(t, cohesive)
	require.NotNil(t, cohesive)
}

func TestConsolidate_SinglePillarGroupsDropped(t *testing.T) {
	results := []models.PillarResult{
		pillarResult("security",
			models.Recommendation{Title: "Enable MFA", Codes: []string{"SE05"}},
			models.Recommendation{Title: "Enable MFA", Codes: []string{"SE06"}},
		),
		pillarResult("cost", models.Recommendation{Title: "Right-size VMs"}),
	}

	cohesive := Consolidate(results, DefaultOptions())
	require.Empty(t, cohesive)
}

func TestConsolidate_EmptyInput(t *testing.T) {
	require.NotNil(t, Consolidate(nil, DefaultOptions()))
	require.Empty(t, Consolidate(nil, DefaultOptions()))
	require.Empty(t, Consolidate([]models.PillarResult{pillarResult("cost")}, DefaultOptions()))
}

func TestConsolidate_OrderedBySeverity(t *testing.T) {
	results := []models.PillarResult{
		pillarResult("reliability",
			models.Recommendation{Title: "Improve monitoring", Severity: 3, Priority: models.PriorityMedium},
			models.Recommendation{Title: "Add failover", Severity: 1, Priority: models.PriorityCritical},
		),
		pillarResult("operational",
			models.Recommendation{Title: "Improve monitoring", Severity: 3, Priority: models.PriorityMedium},
			models.Recommendation{Title: "Add failover", Severity: 2, Priority: models.PriorityHigh},
		),
	}

	cohesive := Consolidate(results, DefaultOptions())
	require.Len(t, cohesive, 2)
	require.Equal(t, "Add failover", cohesive[0].Title)
	require.Equal(t, "Improve monitoring", cohesive[1].Title)
}
