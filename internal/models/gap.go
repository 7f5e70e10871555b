package models

// GapDefinition describes a known architectural anti-pattern to scan for.
// Loaded once per pillar and immutable afterwards.
type GapDefinition struct {
	ID            string   `yaml:"id" json:"id"`
	Label         string   `yaml:"label" json:"label"`
	MatchPatterns []string `yaml:"match_patterns" json:"match_patterns"`
	HintKeywords  []string `yaml:"hint_keywords,omitempty" json:"hint_keywords,omitempty"`
	PracticeCode  string   `yaml:"practice" json:"practice"`
}

// Gap is the detection result for one GapDefinition. Unmatched gaps are
// retained with Matched=false so reports can surface the unmatched count.
type Gap struct {
	ID              string   `json:"id"`
	Label           string   `json:"label"`
	Matched         bool     `json:"matched"`
	MatchedPatterns []string `json:"matched_patterns,omitempty"`
	PracticeCode    string   `json:"practice"`
}
