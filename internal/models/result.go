package models

// Confidence flags how well the deterministic and qualitative score sources
// substantiate each other for a pillar.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// SubcategoryDetail is the per-practice entry of a PillarResult.
type SubcategoryDetail struct {
	PracticeScore    PracticeScore `json:"practice_score"`
	HumanSummary     string        `json:"human_summary"`
	ExpectedConcepts []string      `json:"expected_concepts"`
	Substantiated    bool          `json:"substantiated"`
}

// CategoryScore groups related practice scores into a named category with a
// combined percentage, mirroring the per-category breakdown of the report.
type CategoryScore struct {
	Name    string   `json:"name"`
	Percent float64  `json:"percent"`
	Codes   []string `json:"codes"`
}

// PillarResult is the complete assessment artifact for one pillar.
// Constructed once per assessment run and immutable thereafter; a re-run
// supersedes it rather than mutating it.
type PillarResult struct {
	Pillar                   string                       `json:"pillar"`
	DeterministicMaturityPct float64                      `json:"deterministic_maturity_pct"`
	LLMScore                 *int                         `json:"llm_score,omitempty"`
	Confidence               Confidence                   `json:"confidence"`
	Subcategories            map[string]SubcategoryDetail `json:"subcategory_details"`
	Recommendations          []Recommendation             `json:"recommendations"`
	Gaps                     []Gap                        `json:"gaps"`
	MatchedGapCount          int                          `json:"matched_gap_count"`
	UnmatchedGapCount        int                          `json:"unmatched_gap_count"`
	Categories               []CategoryScore              `json:"categories,omitempty"`
}

// CohesiveRecommendation is a recommendation consolidated across two or more
// pillars. Built only at consolidation time; never persisted independently of
// the final scorecard.
type CohesiveRecommendation struct {
	Recommendation
	SourcePillars             []string `json:"source_pillars"`
	CrossPillarConsiderations []string `json:"cross_pillar_considerations,omitempty"`
}
