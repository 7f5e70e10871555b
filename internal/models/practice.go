package models

import (
	"fmt"
	"strings"
)

// ScoringMode selects how signal coverage maps to a 0–5 practice score.
type ScoringMode string

const (
	ModeBinary       ScoringMode = "binary"
	ModeProportional ScoringMode = "proportional"
	ModeTiered       ScoringMode = "tiered"
)

// ParseScoringMode converts a catalog string to a ScoringMode.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary":
		return ModeBinary, nil
	case "proportional", "":
		return ModeProportional, nil
	case "tiered":
		return ModeTiered, nil
	default:
		return ModeProportional, fmt.Errorf("invalid scoring mode %q: must be binary, proportional, or tiered", s)
	}
}

// PracticeDefinition is one scored sub-criterion of a pillar catalog.
type PracticeDefinition struct {
	Code     string      `yaml:"code" json:"code"`
	Title    string      `yaml:"title" json:"title"`
	Weight   float64     `yaml:"weight" json:"weight"`
	Signals  []string    `yaml:"signals" json:"signals"`
	Mode     ScoringMode `yaml:"mode" json:"mode"`
	Category string      `yaml:"category,omitempty" json:"category,omitempty"`
}

// PracticeScore is the deterministic scoring result for one practice.
// Recomputed per run; never cached across documents.
type PracticeScore struct {
	Code           string      `json:"code"`
	Title          string      `json:"title"`
	Weight         float64     `json:"weight"`
	Score          int         `json:"score"`
	Coverage       float64     `json:"coverage"`
	Mode           ScoringMode `json:"mode"`
	MatchedSignals []string    `json:"matched_signals"`
	TotalSignals   int         `json:"total_signals"`
}
