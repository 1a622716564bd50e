// Package pkg provides the core libraries for Lamina layered graph layout.
//
// # Overview
//
// Lamina computes hierarchical layouts for directed graphs: nodes are
// assigned to horizontal layers, ordered within each layer to reduce edge
// crossings, and given concrete coordinates with routed edges. The pkg
// directory is organized into these areas:
//
//  1. [graph] - Generic directed graph container
//  2. [layout] - The layout engine (ranking, ordering, positioning)
//  3. [io] - JSON graph document serialization
//  4. [render] - DOT, SVG, and PNG output
//  5. [pipeline] - Orchestration (decode → layout → render) with caching
//
// # Architecture
//
// The typical data flow through Lamina:
//
//	Graph document (JSON)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [layout] package (ranks, orders, coordinates, edge routes)
//	         ↓
//	    [render] package (DOT / SVG / PNG) or [io] (JSON)
//
// # Quick Start
//
// Lay out an in-memory graph:
//
//	import (
//	    "github.com/laminagraph/lamina/pkg/graph"
//	    "github.com/laminagraph/lamina/pkg/layout"
//	    "github.com/laminagraph/lamina/pkg/pipeline"
//	)
//
//	g := layout.NewGraph(graph.Options{})
//	g.SetNode("a", &layout.NodeLabel{Width: 100, Height: 50})
//	g.SetNode("b", &layout.NodeLabel{Width: 100, Height: 50})
//	g.SetEdge("a", "b", layout.NewEdgeLabel())
//
//	pipeline.Layout(g)
//
//	a, _ := g.Node("a")
//	fmt.Println(a.X.Or(0), a.Y.Or(0))
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    RankDir: "lr",
//	    Formats: []string{"json", "svg"},
//	})
//
// # Main Packages
//
// [graph] - Directed graph container with optional multigraph and compound
// (nested cluster) support. Deterministic iteration in insertion order.
//
// [layout] - The layout engine and its stages: [layout/acyclic] breaks
// cycles, [layout/rank] assigns layers, [layout/order] minimizes crossings,
// [layout/normalize] subdivides long edges, [layout/nesting] and
// [layout/compound] handle clusters, [layout/selfedges] routes loops.
//
// [io] - Reads and writes the JSON graph document format.
//
// [render] - Converts a laid out graph to Graphviz DOT with pinned geometry,
// and rasterizes DOT to SVG or PNG.
//
// [pipeline] - The decode → layout → render orchestration shared by the CLI
// and library consumers, with content-addressed caching via [cache].
//
// [cache] - Cache interface with file-backed and null implementations, plus
// deterministic cache key derivation.
//
// [errors] - Structured errors with stable error codes.
//
// [observability] - Hook interfaces for instrumenting pipeline stages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Layout engine only
//
// [graph]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/graph
// [layout]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout
// [layout/acyclic]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout/acyclic
// [layout/rank]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout/rank
// [layout/order]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout/order
// [layout/normalize]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout/normalize
// [layout/nesting]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout/nesting
// [layout/compound]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout/compound
// [layout/selfedges]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/layout/selfedges
// [io]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/io
// [render]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/cache
// [errors]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/errors
// [observability]: https://pkg.go.dev/github.com/laminagraph/lamina/pkg/observability
package pkg
