package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/microsoft/archeval/internal/models"
)

// Scorecard is the structured output artifact consumed by the reporting and
// dashboard collaborators: every pillar result plus the consolidated
// cross-pillar recommendations. It carries no timestamps so identical inputs
// serialize to byte-identical artifacts.
type Scorecard struct {
	Pillars                  []models.PillarResult           `json:"pillars"`
	CohesiveRecommendations  []models.CohesiveRecommendation `json:"cohesive_recommendations"`
	OverallMaturityPct       float64                         `json:"overall_maturity_pct"`
	CriticalRecommendations  int                             `json:"critical_recommendations"`
	MatchedGapsAcrossPillars int                             `json:"matched_gaps_across_pillars"`
}

// BuildScorecard assembles the final artifact from pillar results and their
// consolidation. Pillars are ordered by name for reproducibility.
func BuildScorecard(results []models.PillarResult, cohesive []models.CohesiveRecommendation) *Scorecard {
	pillars := append([]models.PillarResult(nil), results...)
	sort.SliceStable(pillars, func(a, b int) bool { return pillars[a].Pillar < pillars[b].Pillar })

	card := &Scorecard{
		Pillars:                 pillars,
		CohesiveRecommendations: cohesive,
	}

	totalPct := 0.0
	for _, res := range pillars {
		totalPct += res.DeterministicMaturityPct
		card.MatchedGapsAcrossPillars += res.MatchedGapCount
		for _, rec := range res.Recommendations {
			if rec.Priority == models.PriorityCritical {
				card.CriticalRecommendations++
			}
		}
	}
	if len(pillars) > 0 {
		card.OverallMaturityPct = totalPct / float64(len(pillars))
	}
	return card
}

// MarshalJSON-stable encoding for the scorecard artifact.
func (s *Scorecard) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteFile writes the scorecard JSON to path, creating parent directories.
// With compress set, the artifact is gzip-compressed and ".gz" is appended.
func (s *Scorecard) WriteFile(path string, compress bool) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if compress {
		path += ".gz"
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating scorecard file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	if compress {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}

	if err := s.Encode(w); err != nil {
		return "", fmt.Errorf("encoding scorecard: %w", err)
	}
	return path, nil
}

// ReadScorecard loads a previously written scorecard JSON file, transparently
// decompressing ".gz" artifacts.
func ReadScorecard(path string) (*Scorecard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scorecard: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing scorecard: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var card Scorecard
	if err := json.NewDecoder(r).Decode(&card); err != nil {
		return nil, fmt.Errorf("decoding scorecard: %w", err)
	}
	return &card, nil
}
