// Package matcher scans normalized document text for catalog-defined signals.
package matcher

import (
	"github.com/microsoft/archeval/internal/document"
	"github.com/microsoft/archeval/internal/models"
)

// Match returns the subset of the practice's signals found in the document by
// case-insensitive substring containment. The result preserves catalog order
// and is deduplicated. Side-effect-free; safe to run concurrently across
// practices and pillars over one document.
func Match(doc document.Document, practice models.PracticeDefinition) []string {
	var matched []string
	seen := make(map[string]struct{}, len(practice.Signals))

	for _, signal := range practice.Signals {
		key := document.Normalize(signal)
		if _, dup := seen[key]; dup {
			continue
		}
		if doc.Contains(signal) {
			matched = append(matched, signal)
			seen[key] = struct{}{}
		}
	}
	return matched
}
