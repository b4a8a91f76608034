package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/core/ports"
)

// KnowledgeService owns the process-wide graph and embedding table. Both are
// built at most once behind the init guard and read concurrently without
// locking afterwards; serving never mutates them.
type KnowledgeService struct {
	store    ports.GraphStore
	builder  ports.GraphBuilder
	embedder ports.Embedder
	logger   *slog.Logger

	initOnce sync.Once
	graph    *domain.Graph
	table    domain.EmbeddingTable
}

func NewKnowledgeService(
	store ports.GraphStore,
	builder ports.GraphBuilder,
	embedder ports.Embedder,
	logger *slog.Logger,
) *KnowledgeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &KnowledgeService{
		store:    store,
		builder:  builder,
		embedder: embedder,
		logger:   logger,
		table:    domain.EmbeddingTable{},
	}
}

// Init loads the persisted graph snapshot, building a fresh one on miss or
// load failure, and derives the embedding table. Safe to call from every
// request; only the first call does work.
func (s *KnowledgeService) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		// The winning caller may be a request whose client disconnects
		// mid-build; the shared graph and table must not inherit its
		// cancellation or the table stays empty for the process lifetime.
		ctx := context.WithoutCancel(ctx)

		s.graph = s.loadOrBuild()
		if s.graph == nil {
			s.logger.Error("knowledge_graph_unavailable")
			return
		}
		s.logger.Info("knowledge_graph_ready", "entities", s.graph.Len(), "edges", s.graph.EdgeCount())

		table, err := s.BuildIndex(ctx, s.graph)
		if err != nil {
			s.logger.Warn("embedding_index_unavailable", "error", err)
			return
		}
		s.table = table
		s.logger.Info("embedding_index_ready", "vectors", len(table))
	})
}

func (s *KnowledgeService) loadOrBuild() *domain.Graph {
	if s.store.Exists() {
		graph, err := s.store.Load()
		if err == nil {
			return graph
		}
		s.logger.Warn("graph_snapshot_load_failed", "error", err)
	}

	graph, err := s.builder.Build()
	if err != nil {
		// The in-memory graph is still usable when only persistence failed.
		s.logger.Warn("graph_build_degraded", "error", err)
	}
	return graph
}

// BuildIndex embeds every entity description (the id when the description is
// empty). Any encode failure yields an empty table, never a partial one, so
// ranking stays consistent.
func (s *KnowledgeService) BuildIndex(ctx context.Context, graph *domain.Graph) (domain.EmbeddingTable, error) {
	if graph == nil || graph.Len() == 0 {
		return domain.EmbeddingTable{}, nil
	}

	table := make(domain.EmbeddingTable, graph.Len())
	for _, entity := range graph.Entities() {
		text := entity.Description
		if text == "" {
			text = entity.ID
		}
		vector, err := s.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return domain.EmbeddingTable{}, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed entity "+entity.ID, err)
		}
		table[entity.ID] = vector
	}
	return table, nil
}

// Snapshot returns the read-only graph and table for request serving.
func (s *KnowledgeService) Snapshot() (*domain.Graph, domain.EmbeddingTable) {
	return s.graph, s.table
}

func (s *KnowledgeService) Status() domain.KnowledgeStatus {
	return domain.KnowledgeStatus{
		GraphLoaded: s.graph != nil,
		EntityCount: s.graph.Len(),
	}
}
