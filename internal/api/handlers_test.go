package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/gemini"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/notify"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/store"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/vector"
)

type fakeGemini struct {
	chatErr error
}

func (f *fakeGemini) Chat(_ context.Context, req gemini.ChatRequest) (gemini.ChatResponse, error) {
	if f.chatErr != nil {
		return gemini.ChatResponse{}, f.chatErr
	}
	return gemini.ChatResponse{Text: "echo: " + req.Message}, nil
}

func (f *fakeGemini) GenerateImage(context.Context, gemini.ImageRequest) (gemini.ImageResponse, error) {
	return gemini.ImageResponse{Images: []string{"data:image/png;base64,aGk="}}, nil
}

func (f *fakeGemini) GenerateVideo(context.Context, gemini.VideoRequest) (gemini.VideoResponse, error) {
	return gemini.VideoResponse{}, gemini.ErrVideoUnavailable
}

func (f *fakeGemini) Transcribe(context.Context, gemini.TranscribeRequest) (gemini.TranscribeResponse, error) {
	return gemini.TranscribeResponse{Text: "transcript"}, nil
}

func (f *fakeGemini) TextToSpeech(context.Context, gemini.TTSRequest) (gemini.TTSResponse, error) {
	return gemini.TTSResponse{AudioBase64: "cGNt"}, nil
}

type fakeVector struct {
	results []map[string]any
	added   *vector.AddRequest
	err     error
}

func (f *fakeVector) Search(_ context.Context, req vector.SearchRequest) ([]map[string]any, error) {
	return f.results, f.err
}

func (f *fakeVector) Add(_ context.Context, req vector.AddRequest) error {
	f.added = &req
	return f.err
}

func newTestServer(t *testing.T, g gemini.Service, v VectorStore) *httptest.Server {
	t.Helper()
	reg := notify.NewRegistry()
	h := &Handlers{
		Log:            zaptest.NewLogger(t),
		AllowedOrigins: []string{"http://localhost:3000"},
		Environment:    notify.EnvDevelopment,
		Registry:       reg,
		Dispatcher:     notify.NewDispatcher(reg, zaptest.NewLogger(t), nil),
		Gemini:         g,
		Vector:         v,
		Settings:       store.NewSettings(),
		Files:          store.NewFiles(),
		Desktop:        store.NewDesktop(),
	}
	srv := httptest.NewServer(SetupRoutes(h, nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "healthy" {
		t.Errorf("body: %v", body)
	}
}

func TestChatProxy(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	resp := postJSON(t, srv.URL+"/api/v1/gemini/chat", gemini.ChatRequest{Message: "hello"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var body gemini.ChatResponse
	decodeBody(t, resp, &body)
	if body.Text != "echo: hello" {
		t.Errorf("text: %q", body.Text)
	}
}

func TestChatProviderFailurePropagates(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{chatErr: errors.New("quota exhausted")}, &fakeVector{})

	resp := postJSON(t, srv.URL+"/api/v1/gemini/chat", gemini.ChatRequest{Message: "hello"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["detail"] != "quota exhausted" {
		t.Errorf("detail: %q", body["detail"])
	}
}

func TestVideoNotImplemented(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	resp := postJSON(t, srv.URL+"/api/v1/gemini/video", gemini.VideoRequest{Prompt: "a cat"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestVectorSearch(t *testing.T) {
	fv := &fakeVector{results: []map[string]any{{"document": "hit"}}}
	srv := newTestServer(t, &fakeGemini{}, fv)

	resp := postJSON(t, srv.URL+"/api/v1/vector/search", vector.SearchRequest{Query: "q"})
	var body struct {
		Results []map[string]any `json:"results"`
	}
	decodeBody(t, resp, &body)
	if len(body.Results) != 1 || body.Results[0]["document"] != "hit" {
		t.Errorf("results: %+v", body.Results)
	}
}

func TestVectorAddRequiresDocuments(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	resp := postJSON(t, srv.URL+"/api/v1/vector/add", vector.AddRequest{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	resp := postJSON(t, srv.URL+"/api/v1/settings/", map[string]any{"key": "theme", "value": "dark"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %d", resp.StatusCode)
	}

	got, err := http.Get(srv.URL + "/api/v1/settings/")
	if err != nil {
		t.Fatalf("GET settings: %v", err)
	}
	var body struct {
		Settings map[string]any `json:"settings"`
	}
	decodeBody(t, got, &body)
	if body.Settings["theme"] != "dark" {
		t.Errorf("settings: %v", body.Settings)
	}
}

func TestFilesUploadListDelete(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "report.txt")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write([]byte("contents"))
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/v1/files/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	var uploaded struct {
		FileID   string `json:"file_id"`
		Filename string `json:"filename"`
	}
	decodeBody(t, resp, &uploaded)
	if uploaded.FileID == "" || uploaded.Filename != "report.txt" {
		t.Fatalf("upload response: %+v", uploaded)
	}

	list, err := http.Get(srv.URL + "/api/v1/files/?parent_id=c_drive")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var listing struct {
		Files []store.FileItem `json:"files"`
	}
	decodeBody(t, list, &listing)
	if len(listing.Files) != 1 || listing.Files[0].Name != "report.txt" {
		t.Fatalf("listing: %+v", listing.Files)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/files/"+uploaded.FileID, nil)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusOK {
		t.Fatalf("delete status: %d", del.StatusCode)
	}
}

func TestDesktopStateRoundTrip(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	windows := map[string]any{"windows": []store.WindowState{{
		ID: "w1", AppID: "browser", Title: "Browser", IsOpen: true,
		Position: store.Point{X: 1, Y: 2}, Size: store.Extent{Width: 800, Height: 600},
	}}}
	resp := postJSON(t, srv.URL+"/api/v1/desktop/state?user_id=alice", windows)
	resp.Body.Close()

	got, err := http.Get(srv.URL + "/api/v1/desktop/state?user_id=alice")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	var body struct {
		Windows []store.WindowState `json:"windows"`
	}
	decodeBody(t, got, &body)
	if len(body.Windows) != 1 || body.Windows[0].AppID != "browser" {
		t.Errorf("windows: %+v", body.Windows)
	}

	// Unknown user gets an empty layout, not an error.
	other, err := http.Get(srv.URL + "/api/v1/desktop/state?user_id=bob")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	decodeBody(t, other, &body)
	if len(body.Windows) != 0 {
		t.Errorf("unknown user windows: %+v", body.Windows)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &fakeGemini{}, &fakeVector{})

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/settings/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin: %q", got)
	}
	if !strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("allow-methods: %q", resp.Header.Get("Access-Control-Allow-Methods"))
	}
}
