package api

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/gemini"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/notify"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/store"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/vector"
)

const apiVersion = "0.1.0"

// VectorStore is the slice of the vector client the handlers use.
type VectorStore interface {
	Search(ctx context.Context, req vector.SearchRequest) ([]map[string]any, error)
	Add(ctx context.Context, req vector.AddRequest) error
}

// Handlers holds shared resources injected from app.Server.
type Handlers struct {
	Log *zap.Logger

	// WebSocket admission inputs, passed explicitly so the policy stays pure.
	AllowedOrigins []string
	Environment    string

	Registry   *notify.Registry
	Dispatcher *notify.Dispatcher
	Metrics    *notify.Metrics

	Gemini   gemini.Service
	Vector   VectorStore
	Settings *store.Settings
	Files    *store.Files
	Desktop  *store.Desktop
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleRoot serves the API banner, except when the client is asking for a
// WebSocket upgrade: the notification socket is reachable at / as well as /ws.
func (h *Handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		h.HandleWS(w, r)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "DurgasOS API",
		"version": apiVersion,
	})
}
