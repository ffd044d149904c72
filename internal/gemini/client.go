package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client implements Service against the Gemini API.
type Client struct {
	genai *genai.Client
	log   *zap.Logger
}

func NewClient(ctx context.Context, apiKey string, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{genai: gc, log: log}, nil
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = ModelChatComplex
	}

	history := make([]*genai.Content, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, &genai.Content{
			Role:  m.Role,
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}

	chat, err := c.genai.Chats.Create(ctx, model, nil, history)
	if err != nil {
		c.log.Error("chat session create failed", zap.String("model", model), zap.Error(err))
		return ChatResponse{}, err
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: req.Message})
	if err != nil {
		c.log.Error("chat failed", zap.String("model", model), zap.Error(err))
		return ChatResponse{}, err
	}

	out := ChatResponse{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		out.GroundingMetadata = resp.Candidates[0].GroundingMetadata
	}
	return out, nil
}

func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (ImageResponse, error) {
	model := ModelImageGenFast
	if req.IsHQ {
		model = ModelImageGenHQ
	}

	resp, err := c.genai.Models.GenerateContent(ctx, model,
		genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		})
	if err != nil {
		c.log.Error("image generation failed", zap.String("model", model), zap.Error(err))
		return ImageResponse{}, err
	}

	images := []string{}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil {
				continue
			}
			images = append(images, fmt.Sprintf("data:%s;base64,%s",
				part.InlineData.MIMEType,
				base64.StdEncoding.EncodeToString(part.InlineData.Data)))
		}
	}
	return ImageResponse{Images: images}, nil
}

func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (VideoResponse, error) {
	return VideoResponse{}, ErrVideoUnavailable
}

func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (TranscribeResponse, error) {
	mime := req.MimeType
	if mime == "" {
		mime = "audio/mp3"
	}
	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		return TranscribeResponse{}, fmt.Errorf("decode audio: %w", err)
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mime, Data: audio}},
			{Text: "Transcribe this audio exactly."},
		},
	}}

	resp, err := c.genai.Models.GenerateContent(ctx, ModelTranscribe, contents, nil)
	if err != nil {
		c.log.Error("transcription failed", zap.Error(err))
		return TranscribeResponse{}, err
	}
	return TranscribeResponse{Text: resp.Text()}, nil
}

func (c *Client) TextToSpeech(ctx context.Context, req TTSRequest) (TTSResponse, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, ModelAudioTTS,
		genai.Text(req.Text),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
		})
	if err != nil {
		c.log.Error("tts failed", zap.Error(err))
		return TTSResponse{}, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				return TTSResponse{
					AudioBase64: base64.StdEncoding.EncodeToString(part.InlineData.Data),
				}, nil
			}
		}
	}
	return TTSResponse{}, fmt.Errorf("no audio generated")
}
