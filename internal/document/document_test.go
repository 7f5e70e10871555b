package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Azure Key Vault", "azure key vault"},
		{"collapses whitespace", "multi   space\t\ttext", "multi space text"},
		{"newlines become spaces", "line one\nline two", "line one line two"},
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestContains(t *testing.T) {
	doc := New("The API gateway uses Managed\nIdentity for auth.")

	require.True(t, doc.Contains("managed identity"))
	require.True(t, doc.Contains("API Gateway"))
	require.False(t, doc.Contains("key vault"))
	require.False(t, doc.Contains(""))
	require.False(t, doc.Contains("   "))
}

func TestLoadFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.txt")
	require.NoError(t, os.WriteFile(path, []byte("Uses Azure Firewall.\n"), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, doc.Contains("azure firewall"))
}

func TestLoadFile_MarkdownStripsFormatting(t *testing.T) {
	md := "# Architecture\n\nWe rely on **zone-redundant** storage.\n\n- private endpoints\n- `managed identity`\n"
	path := filepath.Join(t.TempDir(), "arch.md")
	require.NoError(t, os.WriteFile(path, []byte(md), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, doc.Contains("zone-redundant storage"))
	require.True(t, doc.Contains("private endpoints"))
	require.True(t, doc.Contains("managed identity"))
	require.False(t, doc.Contains("**"))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestExtractMarkdownText_Headings(t *testing.T) {
	text, err := ExtractMarkdownText([]byte("## Reliability\n\nfailover plan\n"))
	require.NoError(t, err)
	require.Contains(t, text, "Reliability")
	require.Contains(t, text, "failover plan")
}
