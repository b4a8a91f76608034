// Command curator maintains the knowledge graph snapshot offline: building
// the curated graph, adding entities, and inspecting the current contents.
// It is never part of the request path.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/madewithnestle/ai-chatbot/internal/config"
	"github.com/madewithnestle/ai-chatbot/internal/infrastructure/graph"
	"github.com/madewithnestle/ai-chatbot/internal/observability/logging"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewJSONLogger("curator", cfg.LogLevel)

	store := graph.NewSnapshotStore(cfg.GraphDir)
	builder := graph.NewBuilder(store, logger)

	switch os.Args[1] {
	case "build":
		g, err := builder.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "build error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("graph built with %d entities and %d edges\n", g.Len(), g.EdgeCount())

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		id := fs.String("id", "", "entity id (required)")
		description := fs.String("description", "", "entity description")
		connect := fs.String("connect", "", "comma-separated ids of existing entities to link")
		_ = fs.Parse(os.Args[2:])

		if *id == "" {
			fmt.Fprintln(os.Stderr, "add: -id is required")
			os.Exit(2)
		}
		var connections []string
		if *connect != "" {
			for _, c := range strings.Split(*connect, ",") {
				if c = strings.TrimSpace(c); c != "" {
					connections = append(connections, c)
				}
			}
		}

		g, err := builder.AddEntity(*id, *description, connections)
		if err != nil {
			fmt.Fprintf(os.Stderr, "add error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("graph updated, now %d entities\n", g.Len())

	case "info":
		if !store.Exists() {
			fmt.Fprintln(os.Stderr, "no graph snapshot found")
			os.Exit(1)
		}
		g, err := store.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "load error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("entities: %d\nedges: %d\n\n", g.Len(), g.EdgeCount())
		for i, e := range g.Entities() {
			fmt.Printf("%3d. %s\n", i+1, e.ID)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: curator <build|add|info> [flags]")
	fmt.Fprintln(os.Stderr, "  build                        rebuild the curated graph snapshot")
	fmt.Fprintln(os.Stderr, "  add -id ID [-description D] [-connect a,b]  add one entity")
	fmt.Fprintln(os.Stderr, "  info                         print snapshot contents")
}
