package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"findex/internal/logging"
	"findex/internal/scanner"
)

// IndexRequest is the /api/index request body.
type IndexRequest struct {
	Root         string `json:"root"`
	BatchSize    int    `json:"batchSize,omitempty"`
	WithMetadata *bool  `json:"withMetadata,omitempty"`
}

// IndexResponse reports a completed scan.
type IndexResponse struct {
	Root         string   `json:"root"`
	Files        int64    `json:"files"`
	Skipped      int64    `json:"skipped"`
	SkippedPaths []string `json:"skippedPaths,omitempty"`
	DurationMs   int64    `json:"durationMs"`
	TotalRecords int64    `json:"totalRecords"`
}

// Index scans a directory into the store. Only one scan runs at a time.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Root == "" {
		writeJSONError(w, "root is required", http.StatusBadRequest)
		return
	}

	if !h.scanning.CompareAndSwap(false, true) {
		writeJSONError(w, "a scan is already running", http.StatusConflict)
		return
	}
	defer h.scanning.Store(false)

	opts := scanner.DefaultOptions(req.Root)
	if req.BatchSize > 0 {
		opts.BatchSize = req.BatchSize
	}
	if req.WithMetadata != nil {
		opts.ExtractMetadata = *req.WithMetadata
	}

	stats, err := scanner.Scan(r.Context(), h.db, opts)
	if err != nil {
		var cfgErr *scanner.ConfigError
		var rootErr *scanner.RootError
		switch {
		case errors.As(err, &cfgErr):
			writeJSONError(w, cfgErr.Error(), http.StatusBadRequest)
		case errors.As(err, &rootErr):
			writeJSONError(w, rootErr.Error(), http.StatusBadRequest)
		default:
			logging.Error("Index of %s failed: %v", req.Root, err)
			writeJSONError(w, "indexing failed", http.StatusInternalServerError)
		}
		return
	}

	total, err := h.db.CountRecords(r.Context())
	if err != nil {
		logging.Warn("Counting records after scan: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, IndexResponse{
		Root:         req.Root,
		Files:        stats.Files,
		Skipped:      stats.Skipped,
		SkippedPaths: stats.SkippedPaths,
		DurationMs:   stats.Duration.Milliseconds(),
		TotalRecords: total,
	})
}
