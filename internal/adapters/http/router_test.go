package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/observability/metrics"
)

type fakeChatBackend struct {
	answer *domain.Answer
	err    error
	status domain.KnowledgeStatus
}

func (f *fakeChatBackend) Chat(_ context.Context, question string) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "chat", fmt.Errorf("question is required"))
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeChatBackend) Status() domain.KnowledgeStatus {
	return f.status
}

func newTestHandler(backend *fakeChatBackend) http.Handler {
	m := metrics.NewServerMetrics("test")
	return NewRouter(backend, m, "test", "test", "").Handler()
}

func TestChatEndpoint(t *testing.T) {
	backend := &fakeChatBackend{
		answer: &domain.Answer{
			Text:    "KitKat is a wafer bar.",
			Sources: []string{"https://www.madewithnestle.ca/brands/kitkat"},
		},
	}
	handler := newTestHandler(backend)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"what is kitkat"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("request id header missing")
	}

	var body struct {
		Answer  string   `json:"answer"`
		Sources []string `json:"sources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Answer != "KitKat is a wafer bar." {
		t.Fatalf("unexpected answer: %q", body.Answer)
	}
	if len(body.Sources) != 1 {
		t.Fatalf("unexpected sources: %v", body.Sources)
	}
}

func TestChatEndpointEmptyQuestion(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"   "}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "question is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestChatEndpointInvalidJSON(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChatEndpointMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{})

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestChatEndpointInternalError(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{err: fmt.Errorf("pipeline exploded")})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"boom"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestChatEndpointNilSourcesBecomeEmptyArray(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{
		answer: &domain.Answer{Text: "hi"},
	})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"hi"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sources":[]`) {
		t.Fatalf("expected empty sources array, got %s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{
		status: domain.KnowledgeStatus{GraphLoaded: true, EntityCount: 26},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status      string `json:"status"`
		GraphLoaded bool   `json:"graph_loaded"`
		NodesCount  int    `json:"nodes_count"`
		Environment string `json:"environment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "healthy" || !body.GraphLoaded || body.NodesCount != 26 || body.Environment != "test" {
		t.Fatalf("unexpected health payload: %+v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mwn_http_in_flight_requests") {
		t.Fatalf("metrics exposition missing expected series: %s", rec.Body.String())
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	handler := newTestHandler(&fakeChatBackend{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("request id not propagated: %q", got)
	}
}

func TestStaticIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>chat</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	m := metrics.NewServerMetrics("test")
	handler := NewRouter(&fakeChatBackend{}, m, "test", "test", dir).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "chat") {
		t.Fatalf("index not served: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}
