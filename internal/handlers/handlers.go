package handlers

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"findex/internal/database"
	"findex/internal/history"
	"findex/internal/logging"
	"findex/internal/search"
)

type Handlers struct {
	db      *database.Database
	engine  *search.Engine
	hist    *history.History
	delims  search.Delimiters
	started time.Time

	// scanning guards against concurrent index runs
	scanning atomic.Bool
}

func New(db *database.Database, hist *history.History, delims search.Delimiters) *Handlers {
	if delims == nil {
		delims = search.DefaultDelimiters()
	}
	return &Handlers{
		db:      db,
		engine:  search.NewEngine(db),
		hist:    hist,
		delims:  delims,
		started: time.Now(),
	}
}

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}
