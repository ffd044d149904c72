// Package gemini proxies generation requests to the Gemini API. The gateway
// adds no prompt logic of its own; requests are shaped for the provider and
// failures come back verbatim.
package gemini

import (
	"context"
	"errors"
)

// ChatMessage is one turn of prior conversation. Role is "user" or "model".
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatRequest struct {
	History      []ChatMessage `json:"history"`
	Message      string        `json:"message"`
	Model        string        `json:"model,omitempty"`
	UseThinking  bool          `json:"use_thinking,omitempty"`
	UseGrounding bool          `json:"use_grounding,omitempty"`
}

type ChatResponse struct {
	Text              string `json:"text"`
	GroundingMetadata any    `json:"grounding_metadata,omitempty"`
}

type ImageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	IsHQ        bool   `json:"is_hq,omitempty"`
}

type ImageResponse struct {
	Images []string `json:"images"` // data URLs
}

type VideoRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

type VideoResponse struct {
	VideoURL string `json:"video_url"`
}

type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64"`
	MimeType    string `json:"mime_type,omitempty"`
}

type TranscribeResponse struct {
	Text string `json:"text"`
}

type TTSRequest struct {
	Text string `json:"text"`
}

type TTSResponse struct {
	AudioBase64 string `json:"audio_base64"`
}

// ErrVideoUnavailable: video generation needs API access the gateway does not
// hold; the endpoint reports it instead of guessing.
var ErrVideoUnavailable = errors.New("video generation requires special API access")

// Service is the provider boundary the HTTP handlers depend on.
type Service interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	GenerateImage(ctx context.Context, req ImageRequest) (ImageResponse, error)
	GenerateVideo(ctx context.Context, req VideoRequest) (VideoResponse, error)
	Transcribe(ctx context.Context, req TranscribeRequest) (TranscribeResponse, error)
	TextToSpeech(ctx context.Context, req TTSRequest) (TTSResponse, error)
}

// Model table carried over from the desktop frontend's expectations.
const (
	ModelChatComplex  = "gemini-3-pro-preview"
	ModelChatFast     = "gemini-2.5-flash-lite"
	ModelImageGenHQ   = "gemini-3-pro-image-preview"
	ModelImageGenFast = "gemini-2.5-flash-image"
	ModelImageEdit    = "gemini-2.5-flash-image"
	ModelVideoFast    = "veo-3.1-fast-generate-preview"
	ModelVideoHQ      = "veo-3.1-generate-preview"
	ModelAudioTTS     = "gemini-2.5-flash-preview-tts"
	ModelTranscribe   = "gemini-2.5-flash"
)
