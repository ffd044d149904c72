// Package vector is a thin facade over the external embedding store. The
// gateway forwards search and add requests unmodified and returns whatever
// the store answers; no index logic lives here.
package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SearchRequest asks the store for the n most similar documents.
type SearchRequest struct {
	Query    string `json:"query"`
	NResults int    `json:"n_results"`
}

// AddRequest inserts documents with optional ids and metadata.
type AddRequest struct {
	Documents []string         `json:"documents"`
	IDs       []string         `json:"ids,omitempty"`
	Metadatas []map[string]any `json:"metadatas,omitempty"`
}

// Client talks to a Chroma-style vector store over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Search forwards the query and returns the store's result list untouched.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]map[string]any, error) {
	if req.NResults <= 0 {
		req.NResults = 5
	}
	raw, err := c.post(ctx, "/search", req)
	if err != nil {
		return nil, err
	}
	var results []map[string]any
	if err := json.Unmarshal(raw, &results); err != nil {
		// Some stores wrap the list; tolerate {"results": [...]}.
		var wrapped struct {
			Results []map[string]any `json:"results"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return nil, fmt.Errorf("decode vector search response: %w", err)
		}
		results = wrapped.Results
	}
	return results, nil
}

// Add inserts documents, defaulting missing ids to doc_<i> and missing
// metadata to empty objects.
func (c *Client) Add(ctx context.Context, req AddRequest) error {
	if len(req.IDs) == 0 {
		req.IDs = make([]string, len(req.Documents))
		for i := range req.Documents {
			req.IDs[i] = fmt.Sprintf("doc_%d", i)
		}
	}
	if len(req.Metadatas) == 0 {
		req.Metadatas = make([]map[string]any, len(req.Documents))
		for i := range req.Metadatas {
			req.Metadatas[i] = map[string]any{}
		}
	}
	_, err := c.post(ctx, "/add", req)
	return err
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode vector request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build vector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vector store request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read vector store response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("vector store %s: %s", resp.Status, bytes.TrimSpace(raw))
	}
	return raw, nil
}
