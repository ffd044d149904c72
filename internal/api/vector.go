package api

import (
	"encoding/json"
	"net/http"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/vector"
)

func (h *Handlers) handleVectorSearch(w http.ResponseWriter, r *http.Request) {
	var req vector.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	results, err := h.Vector.Search(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []map[string]any{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handlers) handleVectorAdd(w http.ResponseWriter, r *http.Request) {
	var req vector.AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Documents) == 0 {
		respondError(w, http.StatusBadRequest, "documents are required")
		return
	}
	if err := h.Vector.Add(r.Context(), req); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
