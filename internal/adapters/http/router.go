package httpadapter

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/core/ports"
	"github.com/madewithnestle/ai-chatbot/internal/observability/metrics"
)

type chatBackend interface {
	ports.ChatService
	ports.KnowledgeReporter
}

type Router struct {
	chat        chatBackend
	metrics     *metrics.ServerMetrics
	service     string
	environment string
	staticDir   string
}

func NewRouter(chat chatBackend, m *metrics.ServerMetrics, service, environment, staticDir string) *Router {
	return &Router{
		chat:        chat,
		metrics:     m,
		service:     service,
		environment: environment,
		staticDir:   staticDir,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", rt.health)
	mux.HandleFunc("/chat", rt.postChat)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	if rt.staticDir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(rt.staticDir))))
		mux.HandleFunc("/", rt.index)
	}

	handler := http.Handler(mux)
	handler = accessLogMiddleware(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(handler)
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	status := rt.chat.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"graph_loaded": status.GraphLoaded,
		"nodes_count":  status.EntityCount,
		"environment":  rt.environment,
	})
}

func (rt *Router) postChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	answer, err := rt.chat.Chat(r.Context(), req.Question)
	if err != nil {
		if domain.IsKind(err, domain.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rt.metrics != nil {
		rt.metrics.ChatObserver(rt.service).RecordDuration(time.Since(start))
	}

	if answer.Sources == nil {
		answer.Sources = []string{}
	}
	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(rt.staticDir, "index.html"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
