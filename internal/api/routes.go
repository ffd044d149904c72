package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes builds the gateway route table around the injected handlers.
// metricsHandler serves the prometheus exposition; nil disables /metrics.
func SetupRoutes(h *Handlers, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(LoggingMiddleware(h.Log))
	r.Use(CORSMiddleware(h.AllowedOrigins, h.Environment))

	r.Get("/health", h.handleHealth)
	r.HandleFunc("/", h.handleRoot)
	r.Get("/ws", h.HandleWS)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/gemini", func(r chi.Router) {
			r.Post("/chat", h.handleChat)
			r.Post("/image", h.handleGenerateImage)
			r.Post("/video", h.handleGenerateVideo)
			r.Post("/transcribe", h.handleTranscribe)
			r.Post("/tts", h.handleTextToSpeech)
		})
		r.Route("/vector", func(r chi.Router) {
			r.Post("/search", h.handleVectorSearch)
			r.Post("/add", h.handleVectorAdd)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.handleGetSettings)
			r.Post("/", h.handleUpdateSetting)
		})
		r.Route("/files", func(r chi.Router) {
			r.Get("/", h.handleListFiles)
			r.Post("/upload", h.handleUploadFile)
			r.Delete("/{fileID}", h.handleDeleteFile)
		})
		r.Route("/desktop", func(r chi.Router) {
			r.Get("/state", h.handleGetDesktopState)
			r.Post("/state", h.handleSaveDesktopState)
		})
	})

	return r
}
