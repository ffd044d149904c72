package vector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchForwardsQuery(t *testing.T) {
	var seen SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key123" {
			t.Errorf("auth header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&seen); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode([]map[string]any{{"document": "hello", "distance": 0.1}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key123")
	results, err := c.Search(context.Background(), SearchRequest{Query: "hello"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if seen.Query != "hello" || seen.NResults != 5 {
		t.Errorf("forwarded request: %+v", seen)
	}
	if len(results) != 1 || results[0]["document"] != "hello" {
		t.Errorf("results: %+v", results)
	}
}

func TestSearchToleratesWrappedResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{{"id": "a"}}})
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL, "").Search(context.Background(), SearchRequest{Query: "q"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0]["id"] != "a" {
		t.Errorf("results: %+v", results)
	}
}

func TestAddDefaultsIDsAndMetadata(t *testing.T) {
	var seen AddRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&seen); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").Add(context.Background(), AddRequest{Documents: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(seen.IDs) != 2 || seen.IDs[0] != "doc_0" || seen.IDs[1] != "doc_1" {
		t.Errorf("ids: %v", seen.IDs)
	}
	if len(seen.Metadatas) != 2 || seen.Metadatas[0] == nil {
		t.Errorf("metadatas: %v", seen.Metadatas)
	}
}

func TestUpstreamErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "collection missing", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Search(context.Background(), SearchRequest{Query: "q"})
	if err == nil {
		t.Fatal("expected upstream error")
	}
}
