package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/microsoft/archeval/internal/aggregate"
	"github.com/microsoft/archeval/internal/assessment"
	"github.com/microsoft/archeval/internal/catalog"
	"github.com/microsoft/archeval/internal/consolidate"
	"github.com/microsoft/archeval/internal/document"
	"github.com/microsoft/archeval/internal/models"
	"github.com/microsoft/archeval/internal/reporting"
	"github.com/microsoft/archeval/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type assessFlags struct {
	pillars            []string
	all                bool
	interactive        bool
	catalogDir         string
	qualitativeDir     string
	qualitativeTimeout time.Duration
	outputDir          string
	gzipOutput         bool
	format             string
	uploadURL          string
	uploadContainer    string
	workers            int
	agreement          float64
}

func newAssessCommand() *cobra.Command {
	var flags assessFlags

	cmd := &cobra.Command{
		Use:   "assess <architecture-document>",
		Short: "Assess an architecture document against maturity pillars",
		Long: `Assess runs the deterministic scoring engine over an architecture
description for one or more pillars, optionally merges externally produced
qualitative scores, and writes the consolidated scorecard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.pillars, "pillar", "p", nil, "Pillar to assess (repeatable); defaults to all")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Assess every available pillar")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Pick pillars interactively")
	cmd.Flags().StringVar(&flags.catalogDir, "catalog-dir", "", "Directory of catalog YAML files overriding the embedded catalogs")
	cmd.Flags().StringVar(&flags.qualitativeDir, "qualitative", "", "Directory of per-pillar qualitative input JSON files")
	cmd.Flags().DurationVar(&flags.qualitativeTimeout, "qualitative-timeout", 30*time.Second, "Maximum wait for qualitative input per pillar")
	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Directory to write scorecard.json and report.md")
	cmd.Flags().BoolVar(&flags.gzipOutput, "gzip", false, "Compress the scorecard artifact")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "table", "Output format: table, json, or markdown")
	cmd.Flags().StringVar(&flags.uploadURL, "upload-url", "", "Blob service URL to upload artifacts to")
	cmd.Flags().StringVar(&flags.uploadContainer, "upload-container", "assessments", "Blob container for uploaded artifacts")
	cmd.Flags().IntVar(&flags.workers, "workers", 4, "Maximum concurrent pillar assessments")
	cmd.Flags().Float64Var(&flags.agreement, "agreement-threshold", 20, "Score agreement threshold (percentage points) for High confidence")

	return cmd
}

func runAssess(cmd *cobra.Command, docPath string, flags assessFlags) error {
	if flags.format != "table" && flags.format != "json" && flags.format != "markdown" {
		return fmt.Errorf("unsupported format %q: must be table, json, or markdown", flags.format)
	}

	doc, err := document.LoadFile(docPath)
	if err != nil {
		return err
	}

	pillars, err := resolvePillars(cmd, flags)
	if err != nil {
		return err
	}

	catalogs, err := loadCatalogs(cmd.Context(), flags.catalogDir, pillars)
	if err != nil {
		return err
	}

	req := assessment.Request{
		Document:           doc,
		Catalogs:           catalogs,
		QualitativeTimeout: flags.qualitativeTimeout,
		Workers:            flags.workers,
		AggregateOptions:   aggregate.Options{AgreementThreshold: flags.agreement},
	}
	if flags.qualitativeDir != "" {
		req.Provider = assessment.NewFileProvider(flags.qualitativeDir)
	}

	runner := assessment.NewRunner()
	runner.AddListener(newProgressReporter(cmd.OutOrStdout()))

	outcomes := runner.Run(cmd.Context(), req)

	results, failed := splitOutcomes(outcomes)
	for _, outcome := range failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "pillar %s failed: %v\n", outcome.Pillar, outcome.Err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no pillar produced a result")
	}

	cohesive := consolidate.Consolidate(results, consolidate.DefaultOptions())
	card := reporting.BuildScorecard(results, cohesive)

	if err := renderScorecard(cmd, card, flags.format); err != nil {
		return err
	}

	if flags.outputDir != "" {
		if err := writeArtifacts(cmd, card, flags); err != nil {
			return err
		}
	}

	if card.CriticalRecommendations > 0 {
		return &CriticalFindingsError{Count: card.CriticalRecommendations}
	}
	return nil
}

func resolvePillars(cmd *cobra.Command, flags assessFlags) ([]string, error) {
	available := catalog.Pillars()
	if flags.catalogDir != "" {
		loaded, err := catalog.LoadDir(flags.catalogDir)
		if err != nil {
			return nil, err
		}
		available = available[:0]
		for name := range loaded {
			available = append(available, name)
		}
		sort.Strings(available)
	}

	switch {
	case flags.interactive:
		return pickPillars(available)
	case flags.all:
		return available, nil
	case len(flags.pillars) > 0:
		for _, p := range flags.pillars {
			if !contains(available, p) {
				return nil, fmt.Errorf("unknown pillar %q: available pillars are %v", p, available)
			}
		}
		return flags.pillars, nil
	default:
		return available, nil
	}
}

// loadCatalogs loads the requested pillar catalogs concurrently. Catalog
// loading is pure file I/O plus validation, so any failure aborts the run
// before assessment starts.
func loadCatalogs(ctx context.Context, dir string, pillars []string) ([]*catalog.Catalog, error) {
	catalogs := make([]*catalog.Catalog, len(pillars))

	g, _ := errgroup.WithContext(ctx)
	for i, pillar := range pillars {
		g.Go(func() error {
			var (
				c   *catalog.Catalog
				err error
			)
			if dir != "" {
				c, err = catalog.Load(filepath.Join(dir, pillar+".yaml"))
			} else {
				c, err = catalog.LoadPillar(pillar)
			}
			if err != nil {
				return err
			}
			catalogs[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalogs, nil
}

func splitOutcomes(outcomes []assessment.PillarOutcome) (results []models.PillarResult, failed []assessment.PillarOutcome) {
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed = append(failed, outcome)
			continue
		}
		results = append(results, *outcome.Result)
	}
	return results, failed
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func writeArtifacts(cmd *cobra.Command, card *reporting.Scorecard, flags assessFlags) error {
	scorecardPath, err := card.WriteFile(filepath.Join(flags.outputDir, "scorecard.json"), flags.gzipOutput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scorecard written to %s\n", scorecardPath)

	reportPath := filepath.Join(flags.outputDir, "report.md")
	if err := writeTextFile(reportPath, reporting.BuildMarkdownReport(card)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportPath)

	if flags.uploadURL == "" {
		return nil
	}

	uploader, err := storage.NewUploader(flags.uploadURL, flags.uploadContainer)
	if err != nil {
		return err
	}
	for _, localPath := range []string{scorecardPath, reportPath} {
		if _, err := uploader.UploadFile(cmd.Context(), "archeval", localPath); err != nil {
			return err
		}
	}
	return nil
}
