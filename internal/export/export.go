package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"findex/internal/search"
)

// Metadata describes an export document.
type Metadata struct {
	ExportedAt    time.Time `yaml:"exported_at"`
	Version       string    `yaml:"version"`
	TotalKeywords int       `yaml:"total_keywords"`
	TotalResults  int       `yaml:"total_results"`
}

// Group holds the results for one keyword.
type Group struct {
	Keyword string          `yaml:"keyword"`
	Results []search.Result `yaml:"results"`
}

// Document is the full export payload.
type Document struct {
	Metadata Metadata `yaml:"metadata"`
	Groups   []Group  `yaml:"groups"`
}

// Build assembles a document from per-keyword result sets. Groups are sorted
// by keyword so exports are deterministic.
func Build(version string, groups map[string][]search.Result) Document {
	keywords := make([]string, 0, len(groups))
	for kw := range groups {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	doc := Document{
		Metadata: Metadata{
			ExportedAt:    time.Now().UTC(),
			Version:       version,
			TotalKeywords: len(keywords),
		},
		Groups: make([]Group, 0, len(keywords)),
	}
	for _, kw := range keywords {
		doc.Groups = append(doc.Groups, Group{Keyword: kw, Results: groups[kw]})
		doc.Metadata.TotalResults += len(groups[kw])
	}
	return doc
}

// Write encodes doc as YAML to w.
func Write(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return enc.Close()
}

// Read decodes an export document from r and validates its totals against
// the actual group contents.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decoding export: %w", err)
	}

	total := 0
	for _, g := range doc.Groups {
		total += len(g.Results)
	}
	if doc.Metadata.TotalKeywords != len(doc.Groups) || doc.Metadata.TotalResults != total {
		return Document{}, fmt.Errorf("export metadata mismatch: declared %d keywords / %d results, found %d / %d",
			doc.Metadata.TotalKeywords, doc.Metadata.TotalResults, len(doc.Groups), total)
	}
	return doc, nil
}

// WriteFile writes doc to path.
func WriteFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return Write(f, doc)
}

// ReadFile reads an export document from path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
