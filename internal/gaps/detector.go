// Package gaps scans architecture text for known anti-pattern phrases.
package gaps

import (
	"github.com/microsoft/archeval/internal/document"
	"github.com/microsoft/archeval/internal/models"
)

// Detect evaluates every gap definition against the document. A gap is
// matched when any of its match patterns is present (case-insensitive
// substring containment against the normalized text). Matched patterns are
// recorded as evidence in catalog order, not discovery order. Unmatched gaps
// are retained with Matched=false so the report can surface them.
func Detect(doc document.Document, defs []models.GapDefinition) []models.Gap {
	results := make([]models.Gap, 0, len(defs))

	for _, def := range defs {
		var evidence []string
		for _, pattern := range def.MatchPatterns {
			if doc.Contains(pattern) {
				evidence = append(evidence, pattern)
			}
		}

		results = append(results, models.Gap{
			ID:              def.ID,
			Label:           def.Label,
			Matched:         len(evidence) > 0,
			MatchedPatterns: evidence,
			PracticeCode:    def.PracticeCode,
		})
	}

	return results
}

// MatchedCount returns how many gaps in the list were matched.
func MatchedCount(list []models.Gap) int {
	n := 0
	for _, g := range list {
		if g.Matched {
			n++
		}
	}
	return n
}
