package usecase

import (
	"context"
	"math"
	"sort"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/core/ports"
)

// Ranker scores graph entities against a query by cosine similarity of their
// embeddings.
type Ranker struct {
	embedder ports.Embedder
}

func NewRanker(embedder ports.Embedder) *Ranker {
	return &Ranker{embedder: embedder}
}

// TopK returns up to k entity ids ordered by descending similarity to the
// query. Only entities present in both the graph and the table are scored.
// An empty table yields an empty result so the caller can fall back to
// keyword matching. Equal scores keep graph insertion order.
func (r *Ranker) TopK(
	ctx context.Context,
	query string,
	graph *domain.Graph,
	table domain.EmbeddingTable,
	k int,
) ([]string, error) {
	if graph == nil || graph.Len() == 0 || len(table) == 0 {
		return nil, nil
	}
	if k <= 0 {
		return nil, nil
	}

	queryVector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed query", err)
	}

	scored := make([]domain.ScoredEntity, 0, graph.Len())
	for _, entity := range graph.Entities() {
		vector, ok := table[entity.ID]
		if !ok {
			continue
		}
		scored = append(scored, domain.ScoredEntity{
			ID:    entity.ID,
			Score: CosineSimilarity(queryVector, vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	out := make([]string, 0, k)
	for _, s := range scored[:k] {
		out = append(out, s.ID)
	}
	return out, nil
}

// CosineSimilarity returns the normalized dot product of two vectors in
// [-1, 1]. Zero-norm or mismatched vectors score 0 instead of dividing by
// zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
