package graph

import (
	"fmt"
	"log/slog"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/core/ports"
)

// Builder constructs the fixed, hand-curated Nestlé knowledge graph and
// persists it through the snapshot store. Build is deterministic: the same
// entity and edge sets every time.
type Builder struct {
	store  ports.GraphStore
	logger *slog.Logger
}

func NewBuilder(store ports.GraphStore, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{store: store, logger: logger}
}

// Build assembles the curated graph and writes the snapshot, overwriting any
// prior one. When the write fails the in-memory graph is still returned
// alongside the error so the caller can serve without persistence.
func (b *Builder) Build() (*domain.Graph, error) {
	g := curatedGraph()

	if err := b.store.Save(g); err != nil {
		return g, domain.WrapError(domain.ErrGraphUnavailable, "persist graph snapshot", err)
	}
	b.logger.Info("graph_built", "entities", g.Len(), "edges", g.EdgeCount())
	return g, nil
}

// AddEntity loads the persisted snapshot (an empty graph on miss), inserts
// one new entity with edges to existing ids only, and re-persists. Edges to
// unknown ids are skipped with a warning, never created as phantom nodes.
// Offline curation only; never called on the request path.
func (b *Builder) AddEntity(id, description string, connections []string) (*domain.Graph, error) {
	var g *domain.Graph
	if b.store.Exists() {
		loaded, err := b.store.Load()
		if err != nil {
			return nil, domain.WrapError(domain.ErrGraphUnavailable, "load graph snapshot", err)
		}
		g = loaded
	} else {
		b.logger.Warn("graph_snapshot_missing", "action", "starting from empty graph")
		g = domain.NewGraph()
	}

	if err := g.AddEntity(domain.Entity{ID: id, Description: description}); err != nil {
		return nil, err
	}

	for _, target := range connections {
		if !g.HasEntity(target) {
			b.logger.Warn("connection_skipped", "entity", id, "target", target)
			continue
		}
		if err := g.AddEdge(id, target); err != nil {
			return nil, err
		}
	}

	if err := b.store.Save(g); err != nil {
		return nil, domain.WrapError(domain.ErrGraphUnavailable, "persist graph snapshot", err)
	}
	b.logger.Info("graph_updated", "entity", id, "entities", g.Len())
	return g, nil
}

func curatedGraph() *domain.Graph {
	g := domain.NewGraph()

	entities := []domain.Entity{
		{ID: "Nestlé", Description: "Nestlé is the world's largest food and beverage company, founded in 1866. Known for 'Good Food, Good Life' philosophy and commitment to nutrition, health, and wellness."},
		{ID: "Nestlé Canada", Description: "Nestlé Canada operates multiple manufacturing facilities and distributes beloved brands across Canada including KitKat, Smarties, Coffee-mate, and Aero."},

		{ID: "Chocolate & Confectionery", Description: "Nestlé's chocolate and confectionery division includes KitKat, Smarties, Aero, Quality Street, and Butterfinger brands.", Category: "chocolate"},
		{ID: "Coffee & Beverages", Description: "Nestlé coffee and beverage portfolio includes Nespresso, Coffee-mate creamers, and various hot chocolate products.", Category: "beverages"},
		{ID: "Dairy & Nutrition", Description: "Nestlé dairy and nutrition products include Carnation evaporated milk, Gerber baby food, and various nutritional supplements.", Category: "nutrition"},
		{ID: "Culinary Solutions", Description: "Nestlé culinary products include cooking ingredients, ready-to-eat meals, and food service solutions.", Category: "culinary"},

		{ID: "KitKat", Description: "KitKat is Nestlé's iconic wafer chocolate bar. 'Have a break, have a KitKat.' Available in various sizes and flavors including chunky varieties and seasonal editions.", Category: "chocolate"},
		{ID: "Smarties", Description: "Smarties are colorful candy-coated chocolate pieces, perfect for children and adults. Available in various pack sizes and often used in baking and decorating.", Category: "chocolate"},
		{ID: "Aero", Description: "Aero chocolate bars feature light, bubbly chocolate with a unique aerated texture. Available in milk chocolate and dark chocolate varieties.", Category: "chocolate"},
		{ID: "Quality Street", Description: "Quality Street offers premium assorted chocolates in distinctive colorful wrappers, perfect for sharing during holidays and special occasions.", Category: "chocolate"},
		{ID: "Butterfinger", Description: "Butterfinger is a crispy peanut butter chocolate bar with a distinctive golden crunch and rich chocolate coating.", Category: "chocolate"},

		{ID: "Nespresso", Description: "Nespresso offers premium coffee systems with high-quality coffee capsules for home and office use. Committed to sustainable coffee sourcing.", Category: "beverages"},
		{ID: "Coffee-mate", Description: "Coffee-mate provides coffee creamers and flavor enhancers in various flavors including seasonal varieties like Peppermint Mocha and Gingerbread.", Category: "beverages"},
		{ID: "Carnation Hot Chocolate", Description: "Carnation hot chocolate mixes provide rich, creamy hot chocolate experience. Available in various flavors and formats.", Category: "beverages"},

		{ID: "Gerber", Description: "Gerber specializes in baby food and infant nutrition, providing age-appropriate foods for babies and toddlers with focus on nutrition and development.", Category: "nutrition"},
		{ID: "Carnation", Description: "Carnation evaporated milk is a versatile cooking ingredient used in recipes, coffee, and baking. A Canadian kitchen staple since 1899.", Category: "nutrition"},

		{ID: "Sustainability", Description: "Nestlé is committed to sustainable practices including responsible sourcing, water stewardship, carbon footprint reduction, and supporting farming communities."},
		{ID: "Cocoa Sustainability", Description: "Nestlé's Cocoa Plan focuses on sustainable cocoa farming, supporting farmers, and ensuring responsible sourcing for chocolate products."},
		{ID: "Nutrition Science", Description: "Nestlé invests in nutrition science research to improve public health, develop functional foods, and create products for different life stages."},
		{ID: "Good Food Good Life", Description: "Nestlé's corporate philosophy emphasizing the company's commitment to enhancing lives through good food and beverages."},

		{ID: "Christmas Products", Description: "Nestlé offers special Christmas and holiday products including advent calendars, gift tins, seasonal flavors, and holiday-themed packaging."},
		{ID: "Gift Ideas", Description: "Nestlé products make excellent gifts including chocolate gift boxes, coffee sets, advent calendars, and custom gift baskets."},

		{ID: "Recipes", Description: "Nestlé provides recipes using their products including baking with chocolate chips, cooking with evaporated milk, and coffee creations."},
		{ID: "Baking", Description: "Many Nestlé products are popular baking ingredients including chocolate chips, cocoa powder, and evaporated milk for cakes, cookies, and desserts."},

		{ID: "Manufacturing", Description: "Nestlé operates manufacturing facilities across Canada, producing products locally and ensuring freshness and quality for Canadian consumers."},
		{ID: "Innovation", Description: "Nestlé continuously innovates in food technology, nutrition science, and sustainable packaging to meet evolving consumer needs."},

		{ID: "Made with Nestlé Website", Description: "madewithnestle.ca is the official Canadian website featuring products, recipes, sustainability information, and brand stories."},
	}

	edges := [][2]string{
		{"Nestlé", "Nestlé Canada"},
		{"Nestlé", "Good Food Good Life"},
		{"Nestlé", "Sustainability"},
		{"Nestlé", "Nutrition Science"},
		{"Nestlé", "Innovation"},
		{"Nestlé Canada", "Made with Nestlé Website"},

		{"Nestlé Canada", "Chocolate & Confectionery"},
		{"Nestlé Canada", "Coffee & Beverages"},
		{"Nestlé Canada", "Dairy & Nutrition"},
		{"Nestlé Canada", "Culinary Solutions"},

		{"Chocolate & Confectionery", "KitKat"},
		{"Chocolate & Confectionery", "Smarties"},
		{"Chocolate & Confectionery", "Aero"},
		{"Chocolate & Confectionery", "Quality Street"},
		{"Chocolate & Confectionery", "Butterfinger"},

		{"Coffee & Beverages", "Nespresso"},
		{"Coffee & Beverages", "Coffee-mate"},
		{"Coffee & Beverages", "Carnation Hot Chocolate"},

		{"Dairy & Nutrition", "Gerber"},
		{"Dairy & Nutrition", "Carnation"},

		{"Sustainability", "Cocoa Sustainability"},
		{"Cocoa Sustainability", "KitKat"},
		{"Cocoa Sustainability", "Smarties"},
		{"Cocoa Sustainability", "Aero"},
		{"Cocoa Sustainability", "Quality Street"},

		{"Christmas Products", "KitKat"},
		{"Christmas Products", "Quality Street"},
		{"Christmas Products", "Smarties"},
		{"Gift Ideas", "Christmas Products"},
		{"Gift Ideas", "Quality Street"},
		{"Gift Ideas", "Coffee-mate"},

		{"Recipes", "Baking"},
		{"Baking", "Smarties"},
		{"Baking", "Carnation"},
		{"Recipes", "Carnation"},
		{"Recipes", "Coffee-mate"},
		{"Made with Nestlé Website", "Recipes"},

		{"Manufacturing", "Nestlé Canada"},
		{"Manufacturing", "KitKat"},
		{"Manufacturing", "Smarties"},
		{"Manufacturing", "Aero"},
	}

	for _, e := range entities {
		if err := g.AddEntity(e); err != nil {
			panic(fmt.Sprintf("curated graph entity %q: %v", e.ID, err))
		}
	}
	for _, edge := range edges {
		if err := g.AddEdge(edge[0], edge[1]); err != nil {
			panic(fmt.Sprintf("curated graph edge %v: %v", edge, err))
		}
	}
	return g
}
