package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbedQuery(t *testing.T) {
	var gotBody struct {
		Model string   `json:"model"`
		Input []string `json:"input"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	client := New(server.URL, "nomic-embed-text")
	vector, err := client.EmbedQuery(context.Background(), "KitKat wafer bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody.Model != "nomic-embed-text" {
		t.Fatalf("unexpected model: %q", gotBody.Model)
	}
	if len(gotBody.Input) != 1 || gotBody.Input[0] != "KitKat wafer bar" {
		t.Fatalf("unexpected input: %v", gotBody.Input)
	}
	if len(vector) != 3 || vector[0] != 0.1 {
		t.Fatalf("unexpected vector: %v", vector)
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{1}, {2}},
		})
	}))
	defer server.Close()

	client := New(server.URL, "nomic-embed-text")
	if _, err := client.Embed(context.Background(), []string{"only one"}); err == nil {
		t.Fatal("expected error for vector count mismatch")
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	client := New("http://localhost:0", "nomic-embed-text")
	vectors, err := client.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected nil, got %v", vectors)
	}
}

func TestEmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "missing-model")
	if _, err := client.EmbedQuery(context.Background(), "text"); err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "0.5.0"})
	}))
	defer server.Close()

	client := New(server.URL, "nomic-embed-text")
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	down := New("http://127.0.0.1:1", "nomic-embed-text")
	if err := down.Ping(context.Background()); err == nil {
		t.Fatal("expected error for unreachable backend")
	}
}
