package handlers

import (
	"net/http"

	"findex/internal/history"
	"findex/internal/logging"
)

// GetHistory returns recorded searches, newest first.
func (h *Handlers) GetHistory(w http.ResponseWriter, _ *http.Request) {
	if h.hist == nil {
		writeJSONError(w, "history disabled", http.StatusNotFound)
		return
	}

	entries := h.hist.Entries()
	if entries == nil {
		entries = []history.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, entries)
}

// ClearHistory removes all recorded searches.
func (h *Handlers) ClearHistory(w http.ResponseWriter, _ *http.Request) {
	if h.hist == nil {
		writeJSONError(w, "history disabled", http.StatusNotFound)
		return
	}

	if err := h.hist.Clear(); err != nil {
		logging.Error("Clearing history failed: %v", err)
		writeJSONError(w, "failed to clear history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "cleared"})
}
