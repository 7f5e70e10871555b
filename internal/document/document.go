// Package document holds the architecture text under assessment.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is an architecture description: the original text plus a
// normalized (lower-cased, whitespace-collapsed) form used for all matching.
// Owned exclusively by the run that processes it; never mutated after load.
type Document struct {
	Raw        string
	Normalized string
}

// New builds a Document from raw architecture text.
func New(raw string) Document {
	return Document{
		Raw:        raw,
		Normalized: Normalize(raw),
	}
}

// LoadFile reads an architecture document from disk. Markdown files have
// their prose extracted first so formatting syntax never matches a signal.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading architecture document: %w", err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		extracted, err := ExtractMarkdownText(data)
		if err != nil {
			return Document{}, fmt.Errorf("extracting markdown text: %w", err)
		}
		text = extracted
	}

	return New(text), nil
}

// Normalize lower-cases text and collapses all whitespace runs to single
// spaces, the canonical form for substring matching.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Contains reports whether the normalized document contains the normalized
// phrase. Exact substring containment is the defined semantics; no stemming,
// no fuzzy matching.
func (d Document) Contains(phrase string) bool {
	p := Normalize(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(d.Normalized, p)
}
