package domain

// EmbeddingTable maps entity ids to fixed-dimension vectors. It is derived
// entirely from the graph and the embedding model, rebuilt on every load and
// never persisted. An empty table means semantic retrieval is unavailable.
type EmbeddingTable map[string][]float32

type ScoredEntity struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Answer is the end-to-end chat response: generated (or fallback) text plus
// the gathered source URLs.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []string `json:"sources"`
}

// KnowledgeStatus reports graph availability for the health endpoint.
type KnowledgeStatus struct {
	GraphLoaded bool `json:"graph_loaded"`
	EntityCount int  `json:"nodes_count"`
}
