package search

import (
	"context"
	"errors"
	"testing"

	"findex/internal/database"
)

// sliceStore serves records from a slice in order.
type sliceStore struct {
	records []database.FileRecord
	err     error
}

func (s *sliceStore) ScanRecords(ctx context.Context, fn func(database.FileRecord) bool) error {
	if s.err != nil {
		return s.err
	}
	for _, rec := range s.records {
		if !fn(rec) {
			return nil
		}
	}
	return nil
}

func rec(path, name string) database.FileRecord {
	return database.FileRecord{Path: path, Name: name}
}

func TestNewDelimiters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tokens  []string
		want    string
		wantErr bool
	}{
		{
			name:   "Single rune tokens",
			tokens: []string{";", ","},
			want:   ";,",
		},
		{
			name:   "Symbolic names",
			tokens: []string{"space", "tab", "newline"},
			want:   " \t\n",
		},
		{
			name:   "Escape sequences",
			tokens: []string{`\t`, `\n`},
			want:   "\t\n",
		},
		{
			name:   "Duplicates dropped, order preserved",
			tokens: []string{";", "space", ";", " "},
			want:   "; ",
		},
		{
			name:   "Full-width runes",
			tokens: []string{"；", "，"},
			want:   "；，",
		},
		{
			name:    "Multi-rune token rejected",
			tokens:  []string{"ab"},
			wantErr: true,
		},
		{
			name:    "Empty set rejected",
			tokens:  []string{},
			wantErr: true,
		},
		{
			name:    "Only empty tokens rejected",
			tokens:  []string{"", ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewDelimiters(tt.tokens)
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("NewDelimiters(%v) = %v, want *ConfigError", tt.tokens, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDelimiters(%v): %v", tt.tokens, err)
			}
			if string(got) != tt.want {
				t.Errorf("NewDelimiters(%v) = %q, want %q", tt.tokens, string(got), tt.want)
			}
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	t.Parallel()

	delims := DefaultDelimiters()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Single keyword", "report", []string{"report"}},
		{"Space separated", "annual report", []string{"annual", "report"}},
		{"Semicolons", "a;b;c", []string{"a", "b", "c"}},
		{"Full-width separators", "年度；报告，最终", []string{"年度", "报告", "最终"}},
		{"Mixed separators", "a; b,c\td", []string{"a", "b", "c", "d"}},
		{"Consecutive separators", "a;;  ,b", []string{"a", "b"}},
		{"Empty input", "", nil},
		{"Only separators", " ;, ", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitKeywords(tt.input, delims)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitKeywords(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("keyword[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	r := rec(`F:\Data\Reports\Annual_Report_2023.pdf`, "Annual_Report_2023.pdf")

	tests := []struct {
		name     string
		keywords []string
		cfg      Config
		want     bool
	}{
		{
			name:     "Single keyword in name",
			keywords: []string{"report"},
			cfg:      DefaultConfig(),
			want:     true,
		},
		{
			name:     "All keywords must match",
			keywords: []string{"annual", "2023"},
			cfg:      DefaultConfig(),
			want:     true,
		},
		{
			name:     "One keyword missing fails",
			keywords: []string{"annual", "2024"},
			cfg:      DefaultConfig(),
			want:     false,
		},
		{
			name:     "Case insensitive by default",
			keywords: []string{"ANNUAL"},
			cfg:      DefaultConfig(),
			want:     true,
		},
		{
			name:     "Case sensitive rejects wrong case",
			keywords: []string{"annual"},
			cfg:      Config{CaseSensitive: true},
			want:     false,
		},
		{
			name:     "Case sensitive accepts exact case",
			keywords: []string{"Annual"},
			cfg:      Config{CaseSensitive: true},
			want:     true,
		},
		{
			name:     "Path component not matched by default",
			keywords: []string{"Data"},
			cfg:      DefaultConfig(),
			want:     false,
		},
		{
			name:     "Path component matched with SearchInPath",
			keywords: []string{"Data"},
			cfg:      Config{SearchInPath: true},
			want:     true,
		},
		{
			name:     "No keywords never matches",
			keywords: nil,
			cfg:      DefaultConfig(),
			want:     false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Match(r, tt.keywords, tt.cfg); got != tt.want {
				t.Errorf("Match(%v, %+v) = %v, want %v", tt.keywords, tt.cfg, got, tt.want)
			}
		})
	}
}

func TestEngineSearch(t *testing.T) {
	t.Parallel()

	store := &sliceStore{records: []database.FileRecord{
		rec("/data/alpha.txt", "alpha.txt"),
		rec("/data/beta.txt", "beta.txt"),
		rec("/data/alpha_beta.txt", "alpha_beta.txt"),
		rec("/data/gamma.log", "gamma.log"),
	}}
	engine := NewEngine(store)
	delims := DefaultDelimiters()

	t.Run("Returns matches in store order", func(t *testing.T) {
		results, err := engine.Search(context.Background(), "alpha", DefaultConfig(), delims)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].Path != "/data/alpha.txt" || results[1].Path != "/data/alpha_beta.txt" {
			t.Errorf("unexpected order: %v", results)
		}
	})

	t.Run("AND across keywords", func(t *testing.T) {
		results, err := engine.Search(context.Background(), "alpha beta", DefaultConfig(), delims)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 1 || results[0].Name != "alpha_beta.txt" {
			t.Errorf("got %v, want only alpha_beta.txt", results)
		}
	})

	t.Run("MaxResults caps output", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxResults = 1
		results, err := engine.Search(context.Background(), "txt", cfg, delims)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("got %d results, want 1", len(results))
		}
	})

	t.Run("Zero MaxResults is unlimited", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxResults = 0
		results, err := engine.Search(context.Background(), "txt", cfg, delims)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("got %d results, want 3", len(results))
		}
	})

	t.Run("Empty query returns no results", func(t *testing.T) {
		results, err := engine.Search(context.Background(), "  ; ,", DefaultConfig(), delims)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("got %d results, want 0", len(results))
		}
	})

	t.Run("Store failure returns no partial results", func(t *testing.T) {
		failing := NewEngine(&sliceStore{err: errors.New("db locked")})
		results, err := failing.Search(context.Background(), "alpha", DefaultConfig(), delims)
		if err == nil {
			t.Fatal("expected error")
		}
		if results != nil {
			t.Errorf("got %v, want nil results on store failure", results)
		}
	})
}
