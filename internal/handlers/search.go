package handlers

import (
	"net/http"
	"strconv"

	"findex/internal/history"
	"findex/internal/logging"
	"findex/internal/search"
	"findex/internal/tree"
)

// SearchResponse is the /api/search payload.
type SearchResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
	Tree    string          `json:"tree,omitempty"`
}

// Search runs a keyword query. Query parameters:
//
//	q             keywords (required)
//	limit         max results, 0 = unlimited (default 2000)
//	nameOnly      match file names only (default true)
//	caseSensitive exact-case matching (default false)
//	tree          include a rendered path tree (default false)
//	rootName      display name for the tree root
//	newRoot       rewrite result paths onto this root
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSONError(w, "missing query parameter q", http.StatusBadRequest)
		return
	}

	cfg := search.DefaultConfig()
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeJSONError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		cfg.MaxResults = limit
	}
	if v := r.URL.Query().Get("nameOnly"); v != "" {
		nameOnly, err := strconv.ParseBool(v)
		if err != nil {
			writeJSONError(w, "invalid nameOnly", http.StatusBadRequest)
			return
		}
		cfg.SearchInPath = !nameOnly
	}
	if v := r.URL.Query().Get("caseSensitive"); v != "" {
		cs, err := strconv.ParseBool(v)
		if err != nil {
			writeJSONError(w, "invalid caseSensitive", http.StatusBadRequest)
			return
		}
		cfg.CaseSensitive = cs
	}

	results, err := h.engine.Search(r.Context(), q, cfg, h.delims)
	if err != nil {
		logging.Error("Search %q failed: %v", q, err)
		writeJSONError(w, "search failed", http.StatusInternalServerError)
		return
	}

	if newRoot := r.URL.Query().Get("newRoot"); newRoot != "" {
		results = tree.RewriteRoot(results, newRoot)
	}

	resp := SearchResponse{
		Query:   q,
		Count:   len(results),
		Results: results,
	}

	if wantTree, _ := strconv.ParseBool(r.URL.Query().Get("tree")); wantTree {
		root := tree.Build(results, r.URL.Query().Get("rootName"))
		resp.Tree = tree.Render(root)
	}

	if h.hist != nil {
		err := h.hist.Add(history.Entry{
			Query:         q,
			SearchInPath:  cfg.SearchInPath,
			CaseSensitive: cfg.CaseSensitive,
			ResultCount:   len(results),
		})
		if err != nil {
			logging.Warn("Failed to record search history: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}
