package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validCatalogYAML = `pillar: testing
version: "1.0"
practices:
  - code: TS01
    title: First practice
    weight: 1.0
    mode: binary
    signals:
      - alpha
`

const invalidCatalogYAML = `pillar: testing
practices:
  - code: lowercase
    title: Bad code pattern
    weight: 2.5
    signals:
      - alpha
`

func TestValidateCatalogBytes_Valid(t *testing.T) {
	errs := ValidateCatalogBytes([]byte(validCatalogYAML))
	require.Empty(t, errs)
}

func TestValidateCatalogBytes_Invalid(t *testing.T) {
	errs := ValidateCatalogBytes([]byte(invalidCatalogYAML))
	require.NotEmpty(t, errs)
}

func TestValidateCatalogBytes_MissingRequiredFields(t *testing.T) {
	errs := ValidateCatalogBytes([]byte(`version: "1.0"`))
	require.NotEmpty(t, errs)
}

func TestValidateCatalogBytes_MalformedYAML(t *testing.T) {
	errs := ValidateCatalogBytes([]byte("pillar: [unclosed"))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validCatalogYAML), 0o644))

	errs, err := ValidateCatalogFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)
}

func TestValidateCatalogFile_Missing(t *testing.T) {
	_, err := ValidateCatalogFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateQualitativeBytes_Valid(t *testing.T) {
	payload := `{
		"domainScores": {"identity": 70},
		"overallScore": 65,
		"recommendations": [
			{"title": "Adopt managed identity", "priority": "High"}
		]
	}`
	errs := ValidateQualitativeBytes([]byte(payload))
	require.Empty(t, errs)
}

func TestValidateQualitativeBytes_WrongTypes(t *testing.T) {
	errs := ValidateQualitativeBytes([]byte(`{"overallScore": "seventy"}`))
	require.NotEmpty(t, errs)
}

func TestValidateQualitativeBytes_MalformedJSON(t *testing.T) {
	errs := ValidateQualitativeBytes([]byte("{broken"))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0], "JSON parse error")
}
