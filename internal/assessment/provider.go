package assessment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/microsoft/archeval/internal/models"
	"github.com/microsoft/archeval/internal/validation"
)

// QualitativeProvider supplies the externally produced qualitative
// score/recommendation set for a pillar. Implementations own the I/O; the
// engine only consumes the decoded artifact.
type QualitativeProvider interface {
	Fetch(ctx context.Context, pillar string) (*models.QualitativeInput, error)
}

// FileProvider reads qualitative input from <dir>/<pillar>.json files, the
// handoff format written by the reasoning-agent collaborator.
type FileProvider struct {
	Dir string
}

// NewFileProvider creates a FileProvider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

// Fetch loads and validates the pillar's qualitative payload. A missing file
// is reported as an error; the runner treats any provider error as "input
// unavailable" and proceeds deterministic-only.
func (p *FileProvider) Fetch(ctx context.Context, pillar string) (*models.QualitativeInput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(p.Dir, strings.ToLower(pillar)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading qualitative input: %w", err)
	}

	if schemaErrs := validation.ValidateQualitativeBytes(data); len(schemaErrs) > 0 {
		return nil, fmt.Errorf("qualitative input %s failed validation: %s", filepath.Base(path), strings.Join(schemaErrs, "; "))
	}

	return models.DecodeQualitativeInput(data)
}

// StaticProvider returns a fixed payload per pillar; used by tests and by
// callers that already hold decoded qualitative input.
type StaticProvider struct {
	Inputs map[string]*models.QualitativeInput
}

// Fetch returns the stored input for the pillar, or nil when absent.
func (p *StaticProvider) Fetch(ctx context.Context, pillar string) (*models.QualitativeInput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	input, ok := p.Inputs[pillar]
	if !ok {
		return nil, fmt.Errorf("no qualitative input for pillar %q", pillar)
	}
	return input, nil
}
