package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"findex/internal/logging"
)

// DefaultMaxEntries bounds the history file.
const DefaultMaxEntries = 100

// Entry is one recorded search.
type Entry struct {
	Query         string    `json:"query"`
	SearchInPath  bool      `json:"search_in_path"`
	CaseSensitive bool      `json:"case_sensitive"`
	ResultCount   int       `json:"result_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// History is a bounded, newest-first log of searches backed by a JSON file.
type History struct {
	mu         sync.Mutex
	path       string
	maxEntries int
	entries    []Entry
}

// DefaultPath returns the history file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "findex", "history.json"), nil
}

// Load reads the history file at path. A missing file yields an empty
// history; a corrupt file is discarded with a warning rather than blocking
// searches. maxEntries <= 0 selects DefaultMaxEntries.
func Load(path string, maxEntries int) (*History, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	h := &History{path: path, maxEntries: maxEntries}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("reading history %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &h.entries); err != nil {
		logging.Warn("History file %s is corrupt, starting fresh: %v", path, err)
		h.entries = nil
	}
	if len(h.entries) > maxEntries {
		h.entries = h.entries[:maxEntries]
	}
	return h, nil
}

// Add prepends an entry, truncates to the bound and persists the file.
func (h *History) Add(e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[:h.maxEntries]
	}
	return h.save()
}

// Entries returns a copy of the recorded searches, newest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear removes all entries and persists the empty file.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	return h.save()
}

func (h *History) save() error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(h.path, data, 0o644); err != nil {
		return fmt.Errorf("writing history %s: %w", h.path, err)
	}
	return nil
}
