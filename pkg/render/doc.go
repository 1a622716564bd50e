// Package render turns laid out graphs into viewable artifacts.
//
// # Overview
//
// The package provides two layers:
//
//   - [ToDOT] exports a laid out graph as Graphviz DOT with the computed
//     geometry attached as standard attributes (pos, width, height, lp)
//   - [SVG] and [PNG] rasterize a DOT document with Graphviz
//
// # DOT Export
//
// ToDOT writes every node's computed center as a pinned pos attribute and
// every edge's routed points as an edge pos, so tools that honor pinned
// positions reproduce the computed drawing exactly. The structural part of
// the document (nodes, edges, labels) stands on its own, so layout engines
// that ignore pins can still draw the same graph.
//
// # Rasterization
//
//	dot := render.ToDOT(g)
//	svg, err := render.SVG(ctx, dot)
//	png, err := render.PNG(ctx, dot)
//
// Rasterization runs the embedded Graphviz, which produces its own drawing
// of the exported structure. It is a preview of the graph, not a
// pixel-exact rendering of the computed coordinates; those travel in the
// JSON artifact and the DOT attributes.
package render
