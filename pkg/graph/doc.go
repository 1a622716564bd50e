// Package graph provides the generic graph container used by the layout engine.
//
// A [Graph] is directed by default and can optionally be a multigraph (several
// edges between the same ordered pair, distinguished by name) and/or compound
// (nodes form a parent/child forest). Node and edge labels are type parameters,
// so the layout pipeline, the ranking spanning tree, and the per-rank layer
// graphs can all share one container with different label shapes.
//
// # Determinism
//
// All iteration (NodeIDs, EdgeKeys, adjacency, children) follows first-insertion
// order. The layout algorithms depend on this for reproducible tie-breaking:
// the same input graph always produces bit-identical output.
//
// # Ownership
//
// Labels are stored as given (typically pointers). The graph never copies or
// synchronizes them; a Graph is not safe for concurrent use.
package graph
