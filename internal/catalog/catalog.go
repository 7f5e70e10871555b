// Package catalog loads and validates per-pillar practice catalogs.
//
// A catalog is the data half of the deterministic engine: scoring practices
// with weighted keyword signals, plus anti-pattern gap definitions. Default
// catalogs for the five Well-Architected pillars are embedded; a directory of
// YAML files can override them.
package catalog

import (
	"embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/microsoft/archeval/internal/models"
	"github.com/microsoft/archeval/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed pillars/*.yaml
var pillarFS embed.FS

// weightTolerance is the permitted deviation of the practice weight sum from 1.0.
const weightTolerance = 1e-3

// Reference points at supporting framework documentation.
type Reference struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// Category names a group of practice codes for the report's category breakdown.
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Codes []string `yaml:"codes" json:"codes"`
}

// Catalog is the complete scoring definition for one pillar.
// Loaded once per pillar; immutable afterwards.
type Catalog struct {
	Pillar     string                      `yaml:"pillar" json:"pillar"`
	Version    string                      `yaml:"version" json:"version"`
	Framework  string                      `yaml:"framework,omitempty" json:"framework,omitempty"`
	Practices  []models.PracticeDefinition `yaml:"practices" json:"practices"`
	Gaps       []models.GapDefinition      `yaml:"gaps,omitempty" json:"gaps,omitempty"`
	Categories []Category                  `yaml:"categories,omitempty" json:"categories,omitempty"`
	References []Reference                 `yaml:"references,omitempty" json:"references,omitempty"`
}

// Parse decodes and validates catalog YAML. Malformed or weight-sum-violating
// catalogs fail fast here with a [models.ConfigError].
func Parse(data []byte) (*Catalog, error) {
	if schemaErrs := validation.ValidateCatalogBytes(data); len(schemaErrs) > 0 {
		return nil, &models.ConfigError{Pillar: "unknown", Problems: schemaErrs}
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and validates a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Pillars lists the pillar names with embedded default catalogs, sorted.
func Pillars() []string {
	entries, err := pillarFS.ReadDir("pillars")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// LoadPillar loads the embedded default catalog for a pillar name.
func LoadPillar(pillar string) (*Catalog, error) {
	data, err := pillarFS.ReadFile("pillars/" + strings.ToLower(pillar) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no embedded catalog for pillar %q", pillar)
	}
	return Parse(data)
}

// LoadDir loads every *.yaml catalog in a directory, keyed by pillar name.
func LoadDir(dir string) (map[string]*Catalog, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	catalogs := make(map[string]*Catalog, len(matches))
	for _, path := range matches {
		c, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		catalogs[c.Pillar] = c
	}
	return catalogs, nil
}

// Validate checks the catalog invariants: practice weights sum to 1.0 within
// tolerance, codes are unique, every practice has at least one signal and a
// known scoring mode, and every gap has at least one match pattern.
func (c *Catalog) Validate() error {
	var problems []string

	if c.Pillar == "" {
		problems = append(problems, "pillar name is empty")
	}
	if len(c.Practices) == 0 {
		problems = append(problems, "catalog has no practices")
	}

	seen := make(map[string]bool, len(c.Practices))
	weightSum := 0.0
	for i := range c.Practices {
		p := &c.Practices[i]
		if seen[p.Code] {
			problems = append(problems, fmt.Sprintf("duplicate practice code %s", p.Code))
		}
		seen[p.Code] = true

		if len(p.Signals) == 0 {
			problems = append(problems, fmt.Sprintf("practice %s has an empty signal list", p.Code))
		}
		if p.Weight < 0 || p.Weight > 1 {
			problems = append(problems, fmt.Sprintf("practice %s weight %.3f outside [0,1]", p.Code, p.Weight))
		}
		weightSum += p.Weight

		mode, err := models.ParseScoringMode(string(p.Mode))
		if err != nil {
			problems = append(problems, fmt.Sprintf("practice %s: %v", p.Code, err))
		} else {
			p.Mode = mode
		}
	}

	if len(c.Practices) > 0 && math.Abs(weightSum-1.0) > weightTolerance {
		problems = append(problems, fmt.Sprintf("practice weights sum to %.4f, want 1.0 ±%.0e", weightSum, weightTolerance))
	}

	gapIDs := make(map[string]bool, len(c.Gaps))
	for _, g := range c.Gaps {
		if g.ID == "" {
			problems = append(problems, "gap with empty id")
			continue
		}
		if gapIDs[g.ID] {
			problems = append(problems, fmt.Sprintf("duplicate gap id %s", g.ID))
		}
		gapIDs[g.ID] = true
		if len(g.MatchPatterns) == 0 {
			problems = append(problems, fmt.Sprintf("gap %s has no match patterns", g.ID))
		}
		if g.PracticeCode != "" && !seen[g.PracticeCode] {
			problems = append(problems, fmt.Sprintf("gap %s references unknown practice %s", g.ID, g.PracticeCode))
		}
	}

	for _, cat := range c.Categories {
		for _, code := range cat.Codes {
			if !seen[code] {
				problems = append(problems, fmt.Sprintf("category %q references unknown practice %s", cat.Name, code))
			}
		}
	}

	if len(problems) > 0 {
		return &models.ConfigError{Pillar: c.Pillar, Problems: problems}
	}
	return nil
}

// Practice returns the definition for a practice code, if present.
func (c *Catalog) Practice(code string) (*models.PracticeDefinition, bool) {
	for i := range c.Practices {
		if c.Practices[i].Code == code {
			return &c.Practices[i], true
		}
	}
	return nil, false
}
