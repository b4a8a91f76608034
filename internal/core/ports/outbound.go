package ports

import (
	"context"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
)

// Embedder encodes free text into a fixed-length vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// GraphStore persists and reads the serialized graph snapshot.
type GraphStore interface {
	Save(g *domain.Graph) error
	Load() (*domain.Graph, error)
	Exists() bool
}

// GraphBuilder constructs the curated knowledge graph and persists it.
type GraphBuilder interface {
	Build() (*domain.Graph, error)
}

// SearchProvider issues site-scoped and general web searches, returning raw
// candidate URLs. Both calls may fail or time out.
type SearchProvider interface {
	SearchSite(ctx context.Context, query, site string) ([]string, error)
	SearchGeneral(ctx context.Context, query string) ([]string, error)
}

// AnswerGenerator creates the final user-facing answer from the question and
// the composed context.
type AnswerGenerator interface {
	Generate(ctx context.Context, question, contextText string) (string, error)
}
