package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/microsoft/archeval/internal/assessment"
	"github.com/microsoft/archeval/internal/reporting"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newProgressReporter returns a listener that prints per-pillar progress
// lines as the run advances.
func newProgressReporter(w io.Writer) assessment.ProgressListener {
	return func(event assessment.ProgressEvent) {
		switch event.EventType {
		case assessment.EventRunStart:
			fmt.Fprintf(w, "Assessing %d pillar(s)...\n", event.TotalPillars)
		case assessment.EventPillarStart:
			fmt.Fprintf(w, "[%d/%d] %s: starting\n", event.PillarNum, event.TotalPillars, event.Pillar)
		case assessment.EventPillarComplete:
			fmt.Fprintf(w, "[%d/%d] %s: maturity %.1f%%, confidence %s\n",
				event.PillarNum, event.TotalPillars, event.Pillar, event.MaturityPct, event.Confidence)
		case assessment.EventPillarFailed:
			fmt.Fprintf(w, "[%d/%d] %s: failed (%v)\n", event.PillarNum, event.TotalPillars, event.Pillar, event.Err)
		}
	}
}

func renderScorecard(cmd *cobra.Command, card *reporting.Scorecard, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		return card.Encode(out)
	case "markdown":
		_, err := io.WriteString(out, reporting.BuildMarkdownReport(card))
		return err
	default:
		var b strings.Builder
		for i := range card.Pillars {
			reporting.WriteTables(&b, &card.Pillars[i])
		}
		fmt.Fprintf(&b, "Overall deterministic maturity: %.1f%% (%s)\n",
			card.OverallMaturityPct, reporting.InterpretMaturity(card.OverallMaturityPct))
		if len(card.CohesiveRecommendations) > 0 {
			b.WriteString("\nCross-pillar recommendations:\n")
			for _, rec := range card.CohesiveRecommendations {
				fmt.Fprintf(&b, "  [sev %d] %s (pillars: %s)\n",
					rec.Severity, rec.Title, strings.Join(rec.SourcePillars, ", "))
			}
		}
		_, err := io.WriteString(out, b.String())
		return err
	}
}

// pickPillars runs an interactive multi-select over the available pillars.
func pickPillars(available []string) ([]string, error) {
	options := make([]huh.Option[string], 0, len(available))
	for _, pillar := range available {
		options = append(options, huh.NewOption(pillar, pillar))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Pillars to assess").
				Options(options...).
				Value(&selected).
				Validate(func(picked []string) error {
					if len(picked) == 0 {
						return fmt.Errorf("select at least one pillar")
					}
					return nil
				}),
		),
	)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("pillar selection failed: %w", err)
	}
	return selected, nil
}

func writeTextFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
