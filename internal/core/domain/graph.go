package domain

import "fmt"

// Entity is a node in the brand knowledge graph: a brand, a product
// category, or a recurring theme such as sustainability.
type Entity struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Graph holds the curated entity set and their undirected topical
// relationships. It is built offline, loaded once per process, and treated
// as a read-only snapshot while serving.
type Graph struct {
	entities map[string]Entity
	order    []string
	adjacent map[string][]string
	edgeSet  map[[2]string]struct{}
	edges    [][2]string
}

func NewGraph() *Graph {
	return &Graph{
		entities: make(map[string]Entity),
		adjacent: make(map[string][]string),
		edgeSet:  make(map[[2]string]struct{}),
	}
}

// AddEntity inserts a new entity. Entity ids are unique within a graph.
func (g *Graph) AddEntity(e Entity) error {
	if e.ID == "" {
		return WrapError(ErrInvalidInput, "add entity", fmt.Errorf("empty entity id"))
	}
	if _, ok := g.entities[e.ID]; ok {
		return WrapError(ErrEntityExists, "add entity", fmt.Errorf("entity %q", e.ID))
	}
	g.entities[e.ID] = e
	g.order = append(g.order, e.ID)
	return nil
}

// AddEdge links two existing entities. Insertion is idempotent; an edge to
// an id that is not part of the entity set is rejected rather than creating
// a phantom node.
func (g *Graph) AddEdge(a, b string) error {
	if a == b {
		return WrapError(ErrInvalidInput, "add edge", fmt.Errorf("self edge on %q", a))
	}
	for _, id := range []string{a, b} {
		if _, ok := g.entities[id]; !ok {
			return WrapError(ErrUnknownEntity, "add edge", fmt.Errorf("entity %q", id))
		}
	}

	key := edgeKey(a, b)
	if _, ok := g.edgeSet[key]; ok {
		return nil
	}
	g.edgeSet[key] = struct{}{}
	g.edges = append(g.edges, key)
	g.adjacent[a] = append(g.adjacent[a], b)
	g.adjacent[b] = append(g.adjacent[b], a)
	return nil
}

func (g *Graph) HasEntity(id string) bool {
	_, ok := g.entities[id]
	return ok
}

func (g *Graph) Entity(id string) (Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// Entities returns all entities in insertion order.
func (g *Graph) Entities() []Entity {
	out := make([]Entity, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.entities[id])
	}
	return out
}

// Neighbors returns the ids directly linked to the given entity, in edge
// insertion order.
func (g *Graph) Neighbors(id string) []string {
	neighbors := g.adjacent[id]
	out := make([]string, len(neighbors))
	copy(out, neighbors)
	return out
}

// Edges returns every undirected relationship as a lexicographically
// normalized pair, in insertion order.
func (g *Graph) Edges() [][2]string {
	out := make([][2]string, len(g.edges))
	copy(out, g.edges)
	return out
}

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return len(g.edges)
}

func edgeKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}
