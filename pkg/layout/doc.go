// Package layout defines the label model shared by every stage of the layered
// layout pipeline, plus the small structural helpers the stages have in
// common (slack-free simplification, layer matrices, rank cleanup, dummy-node
// creation).
//
// The pipeline itself lives in the subpackages (acyclic, nesting, rank,
// normalize, compound, selfedges, order) and is sequenced by pkg/pipeline.
// Every stage mutates a *[Graph] in place and leaves it structurally valid;
// see the package documentation of pkg/graph for the determinism contract.
package layout
