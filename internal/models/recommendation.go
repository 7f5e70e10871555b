package models

import (
	"sort"
	"strings"
)

// Priority is the execution priority attached to a recommendation.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// priorityRank orders priorities with the most urgent first.
var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Rank returns the sort rank of a priority; unknown values sort last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// Effort is the estimated implementation effort for a recommendation.
type Effort string

const (
	EffortLow    Effort = "Low"
	EffortMedium Effort = "Medium"
	EffortHigh   Effort = "High"
)

// Source tags which engine produced a recommendation.
type Source string

const (
	SourceDeterministic Source = "deterministic"
	SourceLLM           Source = "llm"
)

// Recommendation is the canonical recommendation shape for both the
// deterministic engine and the external qualitative source. Identity is the
// normalized title: two recommendations with the same normalized title are
// the same logical entity across sources.
type Recommendation struct {
	Title             string   `json:"title"`
	Reasoning         string   `json:"reasoning"`
	Recommendation    string   `json:"recommendation"`
	Priority          Priority `json:"priority"`
	Severity          int      `json:"severity"`
	Impact            int      `json:"impact,omitempty"`
	Effort            Effort   `json:"effort"`
	Codes             []string `json:"codes"`
	Source            Source   `json:"source"`
	AzureService      string   `json:"azure_service,omitempty"`
	PointsRecoverable float64  `json:"points_recoverable,omitempty"`
}

// NormalizeTitle collapses a recommendation title to its identity form:
// lower-cased, whitespace-collapsed, trimmed of trailing punctuation.
func NormalizeTitle(title string) string {
	fields := strings.Fields(strings.ToLower(title))
	joined := strings.Join(fields, " ")
	return strings.TrimRight(joined, ".!:;")
}

// MergeCodes returns the sorted union of two code sets.
func MergeCodes(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, c := range a {
		seen[c] = struct{}{}
	}
	for _, c := range b {
		seen[c] = struct{}{}
	}
	merged := make([]string, 0, len(seen))
	for c := range seen {
		merged = append(merged, c)
	}
	sort.Strings(merged)
	return merged
}

// SortRecommendations orders recommendations by severity ascending (1 = most
// severe first), then priority rank, then impact descending. The sort is
// stable: ties keep their insertion order.
func SortRecommendations(recs []Recommendation) {
	sort.SliceStable(recs, func(a, b int) bool {
		if recs[a].Severity != recs[b].Severity {
			return recs[a].Severity < recs[b].Severity
		}
		if recs[a].Priority.Rank() != recs[b].Priority.Rank() {
			return recs[a].Priority.Rank() < recs[b].Priority.Rank()
		}
		return recs[a].Impact > recs[b].Impact
	})
}
