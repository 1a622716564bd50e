// Package rank assigns an integer layer to every node so that each edge
// spans at least its minimum length. Three strategies are offered: a cheap
// longest-path pass, a tight spanning tree refinement of it, and the full
// network simplex method that minimizes total weighted edge length.
package rank

import (
	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

// Rank assigns ranks in place using the strategy named on the graph label.
// The graph must be acyclic and connected per component contract.
func Rank(g *layout.Graph) {
	switch g.Label().Ranker {
	case layout.RankerTightTree:
		LongestPath(g)
		FeasibleTree(g)
	case layout.RankerLongestPath:
		LongestPath(g)
	case layout.RankerNone:
		// Caller supplied ranks are kept as they are.
	default:
		NetworkSimplex(g)
	}
}

// LongestPath seeds every node with the smallest rank that satisfies its
// out-edge minimum lengths, placing sinks at rank 0 and working upward into
// negative ranks. It is fast but produces wide layouts on its own.
func LongestPath(g *layout.Graph) {
	visited := make(map[string]bool)

	var dfs func(v string) int
	dfs = func(v string) int {
		node, _ := g.Node(v)
		if visited[v] {
			return node.Rank.Or(0)
		}
		visited[v] = true

		rank := 0
		haveRank := false
		for _, ek := range g.OutEdges(v) {
			lbl, _ := g.EdgeLabel(ek)
			candidate := dfs(ek.W) - lbl.MinLength()
			if !haveRank || candidate < rank {
				rank = candidate
				haveRank = true
			}
		}
		node.Rank = layout.Int(rank)
		return rank
	}

	for _, v := range g.Sources() {
		dfs(v)
	}
}

// Slack is the rank span of the edge beyond its minimum length. Zero means
// the edge is tight.
func Slack(g *layout.Graph, ek graph.EdgeKey) int {
	tail, _ := g.Node(ek.V)
	head, _ := g.Node(ek.W)
	lbl, _ := g.EdgeLabel(ek)
	return head.Rank.Or(0) - tail.Rank.Or(0) - lbl.MinLength()
}
