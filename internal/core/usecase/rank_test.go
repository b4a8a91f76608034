package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func buildTestGraph(t *testing.T, ids ...string) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, id := range ids {
		if err := g.AddEntity(domain.Entity{ID: id, Description: "about " + id}); err != nil {
			t.Fatalf("add entity %q: %v", id, err)
		}
	}
	return g
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("CosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTopKOrdersByDescendingSimilarity(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
	}}
	ranker := NewRanker(embedder)

	g := buildTestGraph(t, "near", "mid", "far")
	table := domain.EmbeddingTable{
		"near": {1, 0, 0},
		"mid":  {1, 1, 0},
		"far":  {0, 1, 0},
	}

	ids, err := ranker.TopK(context.Background(), "query", g, table, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"near", "mid", "far"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %v", len(want), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], ids[i])
		}
	}
}

func TestTopKSelfMatchRanksFirst(t *testing.T) {
	// An entity whose vector equals the query vector must be the top result.
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"kitkat": {0.3, 0.9, 0.1},
	}}
	ranker := NewRanker(embedder)

	g := buildTestGraph(t, "KitKat", "Smarties", "Aero")
	table := domain.EmbeddingTable{
		"KitKat":   {0.3, 0.9, 0.1},
		"Smarties": {0.9, 0.1, 0.2},
		"Aero":     {0.1, 0.2, 0.9},
	}

	ids, err := ranker.TopK(context.Background(), "kitkat", g, table, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "KitKat" {
		t.Fatalf("expected [KitKat], got %v", ids)
	}
}

func TestTopKBoundsAndMembership(t *testing.T) {
	embedder := &fakeEmbedder{}
	ranker := NewRanker(embedder)

	g := buildTestGraph(t, "a", "b", "c")
	table := domain.EmbeddingTable{
		"a": {1, 0, 0},
		"b": {0, 1, 0},
		// c has no vector and must never be returned.
	}

	ids, err := ranker.TopK(context.Background(), "anything", g, table, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) > 2 {
		t.Fatalf("returned more ids than scored entities: %v", ids)
	}
	for _, id := range ids {
		if _, ok := table[id]; !ok {
			t.Fatalf("returned id %q that has no embedding", id)
		}
		if !g.HasEntity(id) {
			t.Fatalf("returned id %q that is not in the graph", id)
		}
	}
}

func TestTopKEmptyTableYieldsNothing(t *testing.T) {
	embedder := &fakeEmbedder{}
	ranker := NewRanker(embedder)

	g := buildTestGraph(t, "a")
	ids, err := ranker.TopK(context.Background(), "q", g, domain.EmbeddingTable{}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids != nil {
		t.Fatalf("expected nil, got %v", ids)
	}
	if embedder.calls != 0 {
		t.Fatalf("embedder called %d times for an empty table", embedder.calls)
	}
}

func TestTopKEmbedderFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: fmt.Errorf("backend down")}
	ranker := NewRanker(embedder)

	g := buildTestGraph(t, "a")
	table := domain.EmbeddingTable{"a": {1}}

	_, err := ranker.TopK(context.Background(), "q", g, table, 5)
	if err == nil {
		t.Fatal("expected error when the embedder fails")
	}
	if !domain.IsKind(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}
