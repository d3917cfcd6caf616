package search

import (
	"context"
	"strings"
	"time"

	"findex/internal/database"
	"findex/internal/metrics"
)

// DefaultMaxResults caps result sets unless overridden per query.
const DefaultMaxResults = 2000

// Config holds per-query search options.
type Config struct {
	// MaxResults caps the number of results. 0 means unlimited.
	MaxResults int
	// SearchInPath matches keywords against the full path instead of just
	// the file name.
	SearchInPath bool
	// CaseSensitive disables case folding.
	CaseSensitive bool
}

// DefaultConfig returns the default per-query options.
func DefaultConfig() Config {
	return Config{
		MaxResults:    DefaultMaxResults,
		SearchInPath:  false,
		CaseSensitive: false,
	}
}

// Result is one matching file.
type Result struct {
	Path  string   `json:"path" yaml:"path"`
	Name  string   `json:"name" yaml:"name"`
	MTime *float64 `json:"mtime,omitempty" yaml:"mtime,omitempty"`
	Size  *int64   `json:"size,omitempty" yaml:"size,omitempty"`
}

// Match reports whether rec matches every keyword. Keywords are matched as
// substrings of the name, or the full path when cfg.SearchInPath is set.
func Match(rec database.FileRecord, keywords []string, cfg Config) bool {
	if len(keywords) == 0 {
		return false
	}

	haystack := rec.Name
	if cfg.SearchInPath {
		haystack = rec.Path
	}
	if !cfg.CaseSensitive {
		haystack = strings.ToLower(haystack)
	}

	for _, kw := range keywords {
		if !cfg.CaseSensitive {
			kw = strings.ToLower(kw)
		}
		if !strings.Contains(haystack, kw) {
			return false
		}
	}
	return true
}

// Store is the index the engine reads from.
type Store interface {
	ScanRecords(ctx context.Context, fn func(database.FileRecord) bool) error
}

// Engine runs keyword queries against a record store.
type Engine struct {
	store Store
}

// NewEngine creates a search engine backed by store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Search splits rawQuery on delims and returns records matching every
// keyword, in store iteration order, stopping once cfg.MaxResults matches
// are collected. A store failure returns the error with no partial results.
func (e *Engine) Search(ctx context.Context, rawQuery string, cfg Config, delims Delimiters) ([]Result, error) {
	start := time.Now()

	keywords := SplitKeywords(rawQuery, delims)
	if len(keywords) == 0 {
		return []Result{}, nil
	}

	results := []Result{}
	err := e.store.ScanRecords(ctx, func(rec database.FileRecord) bool {
		if !Match(rec, keywords, cfg) {
			return true
		}
		results = append(results, Result{
			Path:  rec.Path,
			Name:  rec.Name,
			MTime: rec.MTime,
			Size:  rec.Size,
		})
		return cfg.MaxResults == 0 || len(results) < cfg.MaxResults
	})

	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SearchesTotal.WithLabelValues("success").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResultsReturned.Observe(float64(len(results)))
	return results, nil
}
