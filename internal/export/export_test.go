package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"findex/internal/search"
)

func sampleGroups() map[string][]search.Result {
	mtime := 1700000000.5
	size := int64(2048)
	return map[string][]search.Result{
		"report": {
			{Path: `F:\Data\report_2023.pdf`, Name: "report_2023.pdf", MTime: &mtime, Size: &size},
			{Path: `F:\Data\report_draft.docx`, Name: "report_draft.docx"},
		},
		"invoice": {
			{Path: "/srv/docs/invoice.txt", Name: "invoice.txt"},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	doc := Build("1.2.0", sampleGroups())

	if doc.Metadata.Version != "1.2.0" {
		t.Errorf("Version = %q", doc.Metadata.Version)
	}
	if doc.Metadata.TotalKeywords != 2 {
		t.Errorf("TotalKeywords = %d, want 2", doc.Metadata.TotalKeywords)
	}
	if doc.Metadata.TotalResults != 3 {
		t.Errorf("TotalResults = %d, want 3", doc.Metadata.TotalResults)
	}
	if doc.Metadata.ExportedAt.IsZero() {
		t.Error("ExportedAt should be stamped")
	}

	// Sorted by keyword
	if doc.Groups[0].Keyword != "invoice" || doc.Groups[1].Keyword != "report" {
		t.Errorf("groups not sorted: %v, %v", doc.Groups[0].Keyword, doc.Groups[1].Keyword)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	doc := Build("1.0.0", sampleGroups())

	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Metadata.TotalResults != doc.Metadata.TotalResults {
		t.Errorf("TotalResults = %d, want %d", got.Metadata.TotalResults, doc.Metadata.TotalResults)
	}
	if len(got.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(got.Groups))
	}

	rep := got.Groups[1]
	if rep.Keyword != "report" || len(rep.Results) != 2 {
		t.Fatalf("unexpected report group: %+v", rep)
	}
	first := rep.Results[0]
	if first.Path != `F:\Data\report_2023.pdf` {
		t.Errorf("Path = %q, backslashes should survive YAML", first.Path)
	}
	if first.MTime == nil || *first.MTime != 1700000000.5 {
		t.Errorf("MTime = %v, want 1700000000.5", first.MTime)
	}
	if first.Size == nil || *first.Size != 2048 {
		t.Errorf("Size = %v, want 2048", first.Size)
	}
}

func TestReadRejectsMetadataMismatch(t *testing.T) {
	t.Parallel()

	payload := strings.Join([]string{
		"metadata:",
		"  version: 1.0.0",
		"  total_keywords: 5",
		"  total_results: 99",
		"groups:",
		"  - keyword: a",
		"    results:",
		"      - path: /x/a.txt",
		"        name: a.txt",
	}, "\n")

	if _, err := Read(strings.NewReader(payload)); err == nil {
		t.Fatal("expected metadata mismatch error")
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.yaml")
	doc := Build("2.0.0", sampleGroups())

	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Metadata.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", got.Metadata.Version)
	}
}
