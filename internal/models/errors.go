package models

import (
	"fmt"
	"strings"
)

// ConfigError indicates an invalid practice catalog. It is fatal for the
// pillar it names: assessment for that pillar cannot proceed.
type ConfigError struct {
	Pillar   string
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid catalog for pillar %q: %s", e.Pillar, strings.Join(e.Problems, "; "))
}
