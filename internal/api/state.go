package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/store"
)

// Settings, files and desktop state live in process-local maps; these
// handlers are lookups and last-write-wins updates, nothing more.

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"settings": h.Settings.All()})
}

func (h *Handlers) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Key == "" {
		respondError(w, http.StatusBadRequest, "key is required")
		return
	}
	h.Settings.Set(req.Key, req.Value)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) handleListFiles(w http.ResponseWriter, r *http.Request) {
	parentID := r.URL.Query().Get("parent_id")
	if parentID == "" {
		parentID = "c_drive"
	}
	respondJSON(w, http.StatusOK, map[string]any{"files": h.Files.List(parentID)})
}

func (h *Handlers) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	parentID := r.FormValue("parent_id")
	if parentID == "" {
		parentID = "c_drive"
	}

	// Size comes from the multipart header; content is discarded, the tree is
	// a mock.
	item := h.Files.Add(header.Filename, int(header.Size), parentID)
	respondJSON(w, http.StatusOK, map[string]any{
		"file_id":  item.ID,
		"filename": item.Name,
		"size":     header.Size,
	})
}

func (h *Handlers) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	h.Files.Delete(chi.URLParam(r, "fileID"))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) handleGetDesktopState(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "default"
	}
	respondJSON(w, http.StatusOK, map[string]any{"windows": h.Desktop.Get(userID)})
}

func (h *Handlers) handleSaveDesktopState(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "default"
	}
	var req struct {
		Windows []store.WindowState `json:"windows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.Desktop.Save(userID, req.Windows)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
