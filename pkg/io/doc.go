// Package io provides JSON import and export for layout graphs.
//
// # Overview
//
// This package serializes the graphs lamina lays out to and from a simple
// JSON format. The format is designed for:
//
//   - Feeding arbitrary directed graphs (multigraphs, compound graphs) to
//     the layout pipeline from external tools
//   - Emitting the laid-out graph, with ranks, orders, coordinates, and
//     edge point lists, for downstream renderers
//   - Caching of layout results keyed by the encoded input
//   - Round-trip preservation: import, lay out, export, re-import
//
// # JSON Format
//
//	{
//	  "options": {"multigraph": true, "compound": true},
//	  "graph": {"rankdir": "tb", "nodesep": 50, "ranksep": 50},
//	  "nodes": [
//	    {"id": "app", "width": 80, "height": 40},
//	    {"id": "lib", "width": 80, "height": 40, "parent": "cluster"}
//	  ],
//	  "edges": [
//	    {"v": "app", "w": "lib", "weight": 2, "minlen": 1}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - width, height: Box dimensions (default 0)
//   - parent: Enclosing cluster id (compound graphs only)
//
// On export, laid-out nodes additionally carry x, y, rank, and order.
//
// # Edge Fields
//
// Required:
//   - v, w: Tail and head node ids
//
// Optional:
//   - name: Multigraph edge name (distinguishes parallel edges)
//   - weight: Ranking/ordering weight (default 1)
//   - minlen: Minimum rank span (default 1)
//   - width, height: Label box dimensions (default 0)
//   - labelpos: Label position "l", "c", or "r" (default "c")
//   - labeloffset: Distance between label and edge (default 10)
//
// On export, laid-out edges additionally carry points and, for sized
// labels, x and y.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, err := io.ImportJSON("graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the structure: duplicate node ids, edges or
// parents referencing unknown nodes, and malformed option strings are
// rejected with structured errors (see pkg/errors).
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to
// any io.Writer. The export includes every node and edge with whatever
// layout results are present, so a graph can be exported before or after
// the pipeline runs.
package io
