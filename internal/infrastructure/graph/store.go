package graph

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
)

const snapshotFilename = "graph.gob"

// SnapshotStore persists the graph as an opaque gob snapshot at a fixed
// location inside the graph directory.
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	if dir == "" {
		dir = "graph"
	}
	return &SnapshotStore{dir: dir}
}

type snapshot struct {
	Entities []domain.Entity
	Edges    [][2]string
}

func (s *SnapshotStore) path() string {
	return filepath.Join(s.dir, snapshotFilename)
}

func (s *SnapshotStore) Exists() bool {
	info, err := os.Stat(s.path())
	return err == nil && !info.IsDir()
}

func (s *SnapshotStore) Save(g *domain.Graph) error {
	if g == nil {
		return fmt.Errorf("save snapshot: nil graph")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create graph dir: %w", err)
	}

	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	snap := snapshot{
		Entities: g.Entities(),
		Edges:    g.Edges(),
	}
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load() (*domain.Graph, error) {
	f, err := os.Open(s.path())
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	g := domain.NewGraph()
	for _, e := range snap.Entities {
		if err := g.AddEntity(e); err != nil {
			return nil, fmt.Errorf("restore entity %q: %w", e.ID, err)
		}
	}
	for _, edge := range snap.Edges {
		if err := g.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("restore edge %v: %w", edge, err)
		}
	}
	return g, nil
}
