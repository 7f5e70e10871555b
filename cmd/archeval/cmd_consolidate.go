package main

import (
	"fmt"

	"github.com/microsoft/archeval/internal/consolidate"
	"github.com/microsoft/archeval/internal/models"
	"github.com/microsoft/archeval/internal/reporting"
	"github.com/spf13/cobra"
)

func newConsolidateCommand() *cobra.Command {
	var (
		format         string
		groupByService bool
	)

	cmd := &cobra.Command{
		Use:   "consolidate <scorecard.json>...",
		Short: "Re-consolidate recommendations from existing scorecards",
		Long: `Consolidate reads one or more previously written scorecard artifacts,
pools their pillar results, and recomputes the cross-pillar cohesive
recommendations. Useful for combining scorecards produced by separate
per-pillar runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(cmd, args, format, groupByService)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, or markdown")
	cmd.Flags().BoolVar(&groupByService, "group-by-service", true, "Also group recommendations that target the same Azure service")

	return cmd
}

func runConsolidate(cmd *cobra.Command, paths []string, format string, groupByService bool) error {
	var results []models.PillarResult
	seen := make(map[string]struct{})

	for _, path := range paths {
		card, err := reporting.ReadScorecard(path)
		if err != nil {
			return err
		}
		for _, res := range card.Pillars {
			if _, dup := seen[res.Pillar]; dup {
				return fmt.Errorf("pillar %q appears in more than one scorecard", res.Pillar)
			}
			seen[res.Pillar] = struct{}{}
			results = append(results, res)
		}
	}
	if len(results) == 0 {
		return fmt.Errorf("no pillar results found in %d scorecard(s)", len(paths))
	}

	cohesive := consolidate.Consolidate(results, consolidate.Options{GroupByService: groupByService})
	card := reporting.BuildScorecard(results, cohesive)

	return renderScorecard(cmd, card, format)
}
