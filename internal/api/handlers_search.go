package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/texgest/internal/vectorstore"
)

// handleSearch proxies a query to the vector store. Ranking and scoring
// are entirely Weaviate's; this handler just shapes the response.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, "q is required", http.StatusBadRequest)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	store := s.orchestrator.VectorStore()
	hybrid := r.URL.Query().Get("hybrid") == "true"

	var (
		results []vectorstore.Result
		err     error
	)
	if hybrid {
		results, err = store.HybridSearch(r.Context(), query, float32(s.cfg.HybridAlpha), limit)
	} else {
		results, err = store.Search(r.Context(), query, limit)
	}
	if err != nil {
		s.log.Error("search failed", "query", query, "error", err)
		jsonError(w, "search failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"hybrid":  hybrid,
		"results": results,
	})
}

// handleDeleteDocument removes every chunk stored for one source document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "source")
	if source == "" {
		jsonError(w, "source is required", http.StatusBadRequest)
		return
	}

	deleted, err := s.orchestrator.VectorStore().DeleteBySource(r.Context(), source)
	if err != nil {
		s.log.Error("delete failed", "source", source, "error", err)
		jsonError(w, "delete failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"source":  source,
		"deleted": deleted,
	})
}
