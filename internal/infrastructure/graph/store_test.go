package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())

	g := domain.NewGraph()
	entities := []domain.Entity{
		{ID: "KitKat", Description: "Wafer bar.", Category: "chocolate"},
		{ID: "Smarties", Description: "Colorful pieces.", Category: "chocolate"},
		{ID: "Sustainability", Description: "Responsible sourcing."},
	}
	for _, e := range entities {
		if err := g.AddEntity(e); err != nil {
			t.Fatalf("add entity: %v", err)
		}
	}
	if err := g.AddEdge("KitKat", "Sustainability"); err != nil {
		t.Fatalf("add edge: %v", err)
	}
	if err := g.AddEdge("Smarties", "Sustainability"); err != nil {
		t.Fatalf("add edge: %v", err)
	}

	if store.Exists() {
		t.Fatal("snapshot reported before save")
	}
	if err := store.Save(g); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.Exists() {
		t.Fatal("snapshot not reported after save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != g.Len() || loaded.EdgeCount() != g.EdgeCount() {
		t.Fatalf("round trip lost data: %d/%d entities, %d/%d edges",
			loaded.Len(), g.Len(), loaded.EdgeCount(), g.EdgeCount())
	}

	got, ok := loaded.Entity("KitKat")
	if !ok {
		t.Fatal("KitKat missing after round trip")
	}
	if got.Description != "Wafer bar." || got.Category != "chocolate" {
		t.Fatalf("entity fields lost: %+v", got)
	}

	neighbors := loaded.Neighbors("Sustainability")
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %v", neighbors)
	}
}

func TestSnapshotSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "graph")
	store := NewSnapshotStore(dir)

	g := domain.NewGraph()
	if err := g.AddEntity(domain.Entity{ID: "KitKat"}); err != nil {
		t.Fatalf("add entity: %v", err)
	}
	if err := store.Save(g); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, snapshotFilename)); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
}

func TestSnapshotLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewSnapshotStore(dir)
	if err := os.WriteFile(filepath.Join(dir, snapshotFilename), []byte("not a gob"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}

func TestSnapshotSaveNilGraph(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	if err := store.Save(nil); err == nil {
		t.Fatal("expected error for nil graph")
	}
}
