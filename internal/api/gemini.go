package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/gemini"
)

// The gemini handlers are pass-throughs: decode, call the provider, propagate
// its failure text as the error detail. No retry, no circuit breaking.

func (h *Handlers) handleChat(w http.ResponseWriter, r *http.Request) {
	var req gemini.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.Gemini.Chat(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req gemini.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.Gemini.GenerateImage(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req gemini.VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.Gemini.GenerateVideo(r.Context(), req)
	if err != nil {
		if errors.Is(err, gemini.ErrVideoUnavailable) {
			respondError(w, http.StatusNotImplemented, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req gemini.TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.Gemini.Transcribe(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req gemini.TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.Gemini.TextToSpeech(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
