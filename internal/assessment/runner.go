// Package assessment orchestrates one assessment run: fanning pillar
// evaluations out across workers and joining the completed PillarResults.
package assessment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/microsoft/archeval/internal/aggregate"
	"github.com/microsoft/archeval/internal/catalog"
	"github.com/microsoft/archeval/internal/document"
	"github.com/microsoft/archeval/internal/models"
)

// Request describes one assessment run. Each run is constructed fresh from
// its inputs and discarded after producing its artifacts; there is no shared
// cache or singleton state.
type Request struct {
	Document document.Document
	Catalogs []*catalog.Catalog

	// Provider supplies the qualitative score/recommendation set, the only
	// blocking boundary in the engine. Nil means deterministic-only.
	Provider QualitativeProvider

	// QualitativeTimeout bounds how long each pillar waits for qualitative
	// input before degrading to deterministic-only output.
	QualitativeTimeout time.Duration

	Workers          int
	AggregateOptions aggregate.Options
}

// PillarOutcome pairs a pillar with its result, or the error that stopped it.
// One pillar failing or being cancelled never affects the others.
type PillarOutcome struct {
	Pillar string
	Result *models.PillarResult
	Err    error
}

// EventType identifies a progress event during a run.
type EventType string

const (
	EventRunStart       EventType = "run_start"
	EventRunComplete    EventType = "run_complete"
	EventPillarStart    EventType = "pillar_start"
	EventPillarComplete EventType = "pillar_complete"
	EventPillarFailed   EventType = "pillar_failed"
)

// ProgressEvent is a progress update emitted while a run executes.
type ProgressEvent struct {
	EventType    EventType
	Pillar       string
	PillarNum    int
	TotalPillars int
	MaturityPct  float64
	Confidence   models.Confidence
	Err          error
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Runner executes assessment runs and notifies registered listeners.
type Runner struct {
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// AddListener registers a progress listener for subsequent runs.
func (r *Runner) AddListener(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	for _, listener := range r.listeners {
		listener(event)
	}
}

// Run assesses every requested pillar concurrently and returns outcomes in
// request order. Pillar assessments are pure functions of (document, catalog)
// plus the qualitative boundary, so they run without shared state; the only
// synchronization is the final fan-in join.
func (r *Runner) Run(ctx context.Context, req Request) []PillarOutcome {
	workers := req.Workers
	if workers <= 0 {
		workers = 4
	}

	total := len(req.Catalogs)
	r.notifyProgress(ProgressEvent{EventType: EventRunStart, TotalPillars: total})

	type indexed struct {
		index   int
		outcome PillarOutcome
	}

	resultChan := make(chan indexed, total)
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i, cat := range req.Catalogs {
		wg.Add(1)
		go func(idx int, cat *catalog.Catalog) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			r.notifyProgress(ProgressEvent{
				EventType:    EventPillarStart,
				Pillar:       cat.Pillar,
				PillarNum:    idx + 1,
				TotalPillars: total,
			})

			qual := r.fetchQualitative(ctx, req, cat.Pillar)

			result, err := AssessPillar(ctx, req.Document, cat, qual, req.AggregateOptions)
			if err != nil {
				r.notifyProgress(ProgressEvent{
					EventType:    EventPillarFailed,
					Pillar:       cat.Pillar,
					PillarNum:    idx + 1,
					TotalPillars: total,
					Err:          err,
				})
				resultChan <- indexed{index: idx, outcome: PillarOutcome{Pillar: cat.Pillar, Err: err}}
				return
			}

			r.notifyProgress(ProgressEvent{
				EventType:    EventPillarComplete,
				Pillar:       cat.Pillar,
				PillarNum:    idx + 1,
				TotalPillars: total,
				MaturityPct:  result.DeterministicMaturityPct,
				Confidence:   result.Confidence,
			})
			resultChan <- indexed{index: idx, outcome: PillarOutcome{Pillar: cat.Pillar, Result: result}}
		}(i, cat)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	outcomes := make([]PillarOutcome, total)
	for res := range resultChan {
		outcomes[res.index] = res.outcome
	}

	r.notifyProgress(ProgressEvent{EventType: EventRunComplete, TotalPillars: total})
	return outcomes
}

// fetchQualitative waits on the external reasoning-agent boundary, bounded by
// the configured timeout. Late or missing input degrades that pillar to
// deterministic-only without blocking other pillars.
func (r *Runner) fetchQualitative(ctx context.Context, req Request, pillar string) *models.QualitativeInput {
	if req.Provider == nil {
		return nil
	}

	fetchCtx := ctx
	if req.QualitativeTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, req.QualitativeTimeout)
		defer cancel()
	}

	qual, err := req.Provider.Fetch(fetchCtx, pillar)
	if err != nil {
		slog.Warn("qualitative input unavailable, continuing deterministic-only",
			"pillar", pillar, "error", err)
		return nil
	}
	return qual
}
