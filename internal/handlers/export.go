package handlers

import (
	"net/http"

	"findex/internal/export"
	"findex/internal/logging"
	"findex/internal/search"
	"findex/internal/startup"
)

// Export searches each keyword of q separately and returns the grouped
// results as a YAML document.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSONError(w, "missing query parameter q", http.StatusBadRequest)
		return
	}

	keywords := search.SplitKeywords(q, h.delims)
	if len(keywords) == 0 {
		writeJSONError(w, "no keywords in q", http.StatusBadRequest)
		return
	}

	cfg := search.DefaultConfig()
	groups := make(map[string][]search.Result, len(keywords))
	for _, kw := range keywords {
		results, err := h.engine.Search(r.Context(), kw, cfg, h.delims)
		if err != nil {
			logging.Error("Export search for %q failed: %v", kw, err)
			writeJSONError(w, "export failed", http.StatusInternalServerError)
			return
		}
		groups[kw] = results
	}

	doc := export.Build(startup.Version, groups)

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="findex-export.yaml"`)
	if err := export.Write(w, doc); err != nil {
		logging.Error("Writing export: %v", err)
	}
}
