package models

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-viper/mapstructure/v2"
)

// QualitativeInput is the score/recommendation set produced by the external
// reasoning agent. The engine never calls that agent; it only consumes this
// artifact, and tolerates it being absent or partial.
type QualitativeInput struct {
	DomainScores    map[string]int   `json:"domainScores"`
	OverallScore    *int             `json:"overallScore,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Score returns the pillar-level qualitative score on the 0–100 band, or nil
// when the input carries no usable score. Falls back to the rounded mean of
// the domain scores when no overall score was supplied.
func (q *QualitativeInput) Score() *int {
	if q == nil {
		return nil
	}
	if q.OverallScore != nil {
		s := clampScore(*q.OverallScore)
		return &s
	}
	if len(q.DomainScores) == 0 {
		return nil
	}
	sum := 0
	for _, v := range q.DomainScores {
		sum += clampScore(v)
	}
	mean := int(math.Round(float64(sum) / float64(len(q.DomainScores))))
	return &mean
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// rawQualitativeRec is the loosely-shaped recommendation the reasoning agent
// emits. Field names vary between revisions of the agent prompt, so the
// decode accepts both "recommendation" and "details" for the guidance text.
type rawQualitativeRec struct {
	Title          string `mapstructure:"title"`
	Reasoning      string `mapstructure:"reasoning"`
	Recommendation string `mapstructure:"recommendation"`
	Details        string `mapstructure:"details"`
	Priority       string `mapstructure:"priority"`
	Severity       int    `mapstructure:"severity"`
	Impact         int    `mapstructure:"impact"`
	Effort         string `mapstructure:"effort"`
	AzureService   string `mapstructure:"azure_service"`
	Codes          []string
	Source         string `mapstructure:"source"`
}

type rawQualitativeInput struct {
	DomainScores    map[string]int   `json:"domainScores"`
	OverallScore    *int             `json:"overallScore"`
	Recommendations []map[string]any `json:"recommendations"`
}

// DecodeQualitativeInput parses the reasoning agent's JSON payload into the
// canonical shape. Recommendation fields are decoded weakly typed; missing
// optional fields are left zero-valued for the synthesizer to default.
func DecodeQualitativeInput(data []byte) (*QualitativeInput, error) {
	var raw rawQualitativeInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing qualitative input: %w", err)
	}

	out := &QualitativeInput{
		DomainScores: raw.DomainScores,
		OverallScore: raw.OverallScore,
	}

	for i, entry := range raw.Recommendations {
		var rec rawQualitativeRec
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &rec,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(entry); err != nil {
			return nil, fmt.Errorf("decoding qualitative recommendation %d: %w", i, err)
		}

		text := rec.Recommendation
		if text == "" {
			text = rec.Details
		}

		out.Recommendations = append(out.Recommendations, Recommendation{
			Title:          rec.Title,
			Reasoning:      rec.Reasoning,
			Recommendation: text,
			Priority:       Priority(rec.Priority),
			Severity:       rec.Severity,
			Impact:         rec.Impact,
			Effort:         Effort(rec.Effort),
			Codes:          MergeCodes(rec.Codes, nil),
			Source:         SourceLLM,
			AzureService:   rec.AzureService,
		})
	}

	return out, nil
}
