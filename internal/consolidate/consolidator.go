// Package consolidate merges recommendations that recur across multiple
// pillar results into unified cohesive recommendations.
package consolidate

import (
	"sort"

	"github.com/microsoft/archeval/internal/models"
)

// Options tune consolidation grouping. Grouping by shared Azure service is a
// configurable default rather than hard-coded law.
type Options struct {
	GroupByService bool
}

// DefaultOptions returns the standard consolidation settings.
func DefaultOptions() Options {
	return Options{GroupByService: true}
}

// member is one recommendation with its originating pillar.
type member struct {
	pillar string
	rec    models.Recommendation
}

// Consolidate groups recommendations across pillar results by normalized
// title (and, when enabled, by shared Azure service), and promotes groups
// spanning two or more distinct pillars to CohesiveRecommendations.
// Single-pillar groups are dropped: they remain ordinary per-pillar
// recommendations. An empty or single-result input yields an empty list.
func Consolidate(results []models.PillarResult, opts Options) []models.CohesiveRecommendation {
	var all []member
	for _, res := range results {
		for _, rec := range res.Recommendations {
			all = append(all, member{pillar: res.Pillar, rec: rec})
		}
	}
	if len(all) == 0 {
		return []models.CohesiveRecommendation{}
	}

	groupOf := make([]int, len(all))
	groupByKey := make(map[string]int)
	nextGroup := 0

	keyGroup := func(key string) (int, bool) {
		g, ok := groupByKey[key]
		return g, ok
	}

	for i, m := range all {
		titleKey := "title:" + models.NormalizeTitle(m.rec.Title)
		group, found := keyGroup(titleKey)

		if !found && opts.GroupByService && m.rec.AzureService != "" {
			group, found = keyGroup("service:" + models.NormalizeTitle(m.rec.AzureService))
		}
		if !found {
			group = nextGroup
			nextGroup++
		}

		groupOf[i] = group
		groupByKey[titleKey] = group
		if opts.GroupByService && m.rec.AzureService != "" {
			groupByKey["service:"+models.NormalizeTitle(m.rec.AzureService)] = group
		}
	}

	type groupAcc struct {
		base       models.Recommendation
		hasBase    bool
		pillars    []string
		pillarSeen map[string]struct{}
		reasons    []string
		reasonSeen map[string]struct{}
		codes      []string
	}

	groups := make([]*groupAcc, nextGroup)
	for i, m := range all {
		acc := groups[groupOf[i]]
		if acc == nil {
			acc = &groupAcc{
				pillarSeen: make(map[string]struct{}),
				reasonSeen: make(map[string]struct{}),
			}
			groups[groupOf[i]] = acc
		}

		if !acc.hasBase {
			acc.base = m.rec
			acc.hasBase = true
		}
		acc.codes = models.MergeCodes(acc.codes, m.rec.Codes)

		if _, seen := acc.pillarSeen[m.pillar]; !seen {
			acc.pillarSeen[m.pillar] = struct{}{}
			acc.pillars = append(acc.pillars, m.pillar)
		}
		if m.rec.Reasoning != "" {
			if _, seen := acc.reasonSeen[m.rec.Reasoning]; !seen {
				acc.reasonSeen[m.rec.Reasoning] = struct{}{}
				acc.reasons = append(acc.reasons, m.rec.Reasoning)
			}
		}
	}

	var cohesive []models.CohesiveRecommendation
	for _, acc := range groups {
		if acc == nil || len(acc.pillars) < 2 {
			continue
		}
		rec := acc.base
		rec.Codes = acc.codes

		pillars := append([]string(nil), acc.pillars...)
		sort.Strings(pillars)

		cohesive = append(cohesive, models.CohesiveRecommendation{
			Recommendation:            rec,
			SourcePillars:             pillars,
			CrossPillarConsiderations: acc.reasons,
		})
	}

	sort.SliceStable(cohesive, func(a, b int) bool {
		ra, rb := cohesive[a].Recommendation, cohesive[b].Recommendation
		if ra.Severity != rb.Severity {
			return ra.Severity < rb.Severity
		}
		if ra.Priority.Rank() != rb.Priority.Rank() {
			return ra.Priority.Rank() < rb.Priority.Rank()
		}
		return ra.Impact > rb.Impact
	})

	if cohesive == nil {
		return []models.CohesiveRecommendation{}
	}
	return cohesive
}
