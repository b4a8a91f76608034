package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
)

type ComposerConfig struct {
	TopK              int
	NeighborLimit     int
	DescriptionLimit  int
	NeighborDescLimit int
}

func (c ComposerConfig) normalize() ComposerConfig {
	out := c
	if out.TopK <= 0 {
		out.TopK = 5
	}
	if out.NeighborLimit < 0 {
		out.NeighborLimit = 0
	}
	if out.DescriptionLimit <= 0 {
		out.DescriptionLimit = 200
	}
	if out.NeighborDescLimit <= 0 {
		out.NeighborDescLimit = 100
	}
	return out
}

// Composer turns ranked graph entities into a bounded context string for the
// generation prompt, expanding each top entity with a few one-hop neighbors.
type Composer struct {
	ranker *Ranker
	cfg    ComposerConfig
	logger *slog.Logger
}

func NewComposer(ranker *Ranker, cfg ComposerConfig, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		ranker: ranker,
		cfg:    cfg.normalize(),
		logger: logger,
	}
}

// Compose returns the knowledge context for a query. When ranking is
// unavailable or yields nothing it degrades to the static keyword tables, so
// the result is never empty. The second return reports that degradation so
// the caller can count it.
func (c *Composer) Compose(
	ctx context.Context,
	query string,
	graph *domain.Graph,
	table domain.EmbeddingTable,
) (string, bool) {
	if graph == nil || graph.Len() == 0 || len(table) == 0 {
		return FallbackContext(query), true
	}

	ids, err := c.ranker.TopK(ctx, query, graph, table, c.cfg.TopK)
	if err != nil {
		c.logger.Warn("context_ranking_failed", "error", err)
		return FallbackContext(query), true
	}
	if len(ids) == 0 {
		return FallbackContext(query), true
	}

	blocks := make([]string, 0, len(ids)*(1+c.cfg.NeighborLimit))
	emitted := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		entity, ok := graph.Entity(id)
		if !ok {
			continue
		}
		if _, done := emitted[id]; done {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("**%s**: %s", entity.ID, truncate(describe(entity), c.cfg.DescriptionLimit)))
		emitted[id] = struct{}{}

		related := 0
		for _, neighborID := range graph.Neighbors(id) {
			if related == c.cfg.NeighborLimit {
				break
			}
			if _, done := emitted[neighborID]; done {
				continue
			}
			neighbor, ok := graph.Entity(neighborID)
			if !ok {
				continue
			}
			blocks = append(blocks, fmt.Sprintf("*Related - %s*: %s", neighbor.ID, truncate(describe(neighbor), c.cfg.NeighborDescLimit)))
			emitted[neighborID] = struct{}{}
			related++
		}
	}

	if len(blocks) == 0 {
		return FallbackContext(query), true
	}
	return strings.Join(blocks, "\n"), false
}

func describe(e domain.Entity) string {
	if e.Description != "" {
		return e.Description
	}
	return e.ID
}

// truncate bounds a description at limit runes, marking the cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
