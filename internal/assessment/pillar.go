package assessment

import (
	"context"
	"fmt"

	"github.com/microsoft/archeval/internal/aggregate"
	"github.com/microsoft/archeval/internal/catalog"
	"github.com/microsoft/archeval/internal/document"
	"github.com/microsoft/archeval/internal/gaps"
	"github.com/microsoft/archeval/internal/matcher"
	"github.com/microsoft/archeval/internal/models"
	"github.com/microsoft/archeval/internal/scorer"
	"github.com/microsoft/archeval/internal/synthesis"
)

// AssessPillar runs the full deterministic pipeline for one pillar: signal
// matching, practice scoring, gap detection, recommendation synthesis, and
// aggregation with the (possibly absent) qualitative input.
//
// Gap detection runs concurrently with practice scoring; both read the
// immutable document and catalog only, so no locking is needed.
func AssessPillar(ctx context.Context, doc document.Document, cat *catalog.Catalog, qual *models.QualitativeInput, opts aggregate.Options) (*models.PillarResult, error) {
	gapChan := make(chan []models.Gap, 1)
	go func() {
		gapChan <- gaps.Detect(doc, cat.Gaps)
	}()

	scores := make([]models.PracticeScore, 0, len(cat.Practices))
	for _, practice := range cat.Practices {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pillar %s assessment cancelled: %w", cat.Pillar, err)
		}

		matched := matcher.Match(doc, practice)
		score, err := scorer.Score(practice, matched)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	gapResults := <-gapChan

	var external []models.Recommendation
	if qual != nil {
		external = qual.Recommendations
	}

	recs := synthesis.Synthesize(cat, scores, gapResults, external)
	result := aggregate.Aggregate(cat, scores, gapResults, recs, qual, opts)
	return &result, nil
}
