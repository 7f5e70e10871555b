package matcher

import (
	"testing"

	"github.com/microsoft/archeval/internal/document"
	"github.com/microsoft/archeval/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMatch_CaseInsensitiveSubstring(t *testing.T) {
	doc := document.New("We use Azure Backup and zone-redundant storage for DR.")
	def := models.PracticeDefinition{
		Code:    "RE01",
		Signals: []string{"azure backup", "Zone-Redundant", "chaos engineering"},
	}

	matched := Match(doc, def)
	require.Equal(t, []string{"azure backup", "Zone-Redundant"}, matched)
}

func TestMatch_PreservesCatalogOrder(t *testing.T) {
	doc := document.New("failover region backup")
	def := models.PracticeDefinition{
		Code:    "RE02",
		Signals: []string{"backup", "failover", "region"},
	}

	matched := Match(doc, def)
	require.Equal(t, []string{"backup", "failover", "region"}, matched)
}

func TestMatch_DeduplicatesEquivalentSignals(t *testing.T) {
	doc := document.New("the system uses health probes")
	def := models.PracticeDefinition{
		Code:    "RE03",
		Signals: []string{"health probes", "Health  Probes"},
	}

	matched := Match(doc, def)
	require.Equal(t, []string{"health probes"}, matched)
}

func TestMatch_NormalizesWhitespaceAcrossLines(t *testing.T) {
	doc := document.New("We configured\nauto\tscaling for the web tier.")
	def := models.PracticeDefinition{
		Code:    "PE01",
		Signals: []string{"auto scaling"},
	}

	matched := Match(doc, def)
	require.Equal(t, []string{"auto scaling"}, matched)
}

func TestMatch_NothingMatched(t *testing.T) {
	doc := document.New("a plain web app")
	def := models.PracticeDefinition{
		Code:    "SE01",
		Signals: []string{"managed identity", "key vault"},
	}

	require.Empty(t, Match(doc, def))
}
