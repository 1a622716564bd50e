// Package order assigns every node an order index within its rank. Starting
// from a depth-first initial placement it runs alternating up/down barycenter
// sweeps with constraint-aware conflict resolution, keeping the layering with
// the fewest weighted edge crossings.
package order

import (
	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

// layerGraph is the per-rank scratch graph one sweep step sorts. Node labels
// are shared with the main graph, edge labels hold aggregated weights, and
// the graph label holds the synthetic root id.
type layerGraph = graph.Graph[*layout.NodeLabel, float64, string]

// conflictGraph carries ordering constraints across the ranks of one sweep
// direction; only edge existence matters.
type conflictGraph = graph.Graph[struct{}, struct{}, struct{}]

func newConflictGraph() *conflictGraph {
	return graph.New[struct{}, struct{}, struct{}](graph.Options{Directed: true})
}

// relationship selects which incident edges connect a rank to the layer the
// sweep just finished.
type relationship int

const (
	inEdges relationship = iota
	outEdges
)

// buildLayerGraph collects the nodes active on one rank under a synthetic
// root that adopts any parent-less node, preserving the cluster hierarchy.
// The in- or out-edges of each node are folded onto single unnamed edges
// from the adjacent-layer endpoint with summed weights. Cluster nodes keep
// only their border ids for the given rank. A nil nodes slice means every
// node of g is a candidate.
func buildLayerGraph(g *layout.Graph, rank int, rel relationship, nodes []string) *layerGraph {
	root := layout.UniqueNodeID(g, "_root")
	lg := graph.New[*layout.NodeLabel, float64, string](graph.Options{
		Directed: true,
		Compound: true,
	})
	lg.SetLabel(root)
	lg.SetNode(root, &layout.NodeLabel{})

	if nodes == nil {
		nodes = g.NodeIDs()
	}
	for _, v := range nodes {
		node, ok := g.Node(v)
		if !ok {
			continue
		}
		if !activeOnRank(node, rank) {
			continue
		}

		lg.SetNode(v, node)
		parent := g.Parent(v)
		if parent == "" {
			parent = root
		} else if !lg.HasNode(parent) {
			parentNode, _ := g.Node(parent)
			lg.SetNode(parent, parentNode)
		}
		lg.SetParent(v, parent)

		var incident []graph.EdgeKey
		if rel == inEdges {
			incident = g.InEdges(v)
		} else {
			incident = g.OutEdges(v)
		}
		for _, ek := range incident {
			u := ek.V
			if u == v {
				u = ek.W
			}
			if !lg.HasNode(u) {
				uNode, _ := g.Node(u)
				lg.SetNode(u, uNode)
			}
			prev, _ := lg.Edge(u, v, "")
			lbl, _ := g.EdgeLabel(ek)
			lg.SetEdge(u, v, prev+lbl.EdgeWeight())
		}

		// Clusters are reduced to the pair of border ids relevant to this
		// rank so sortSubgraph can bracket their children.
		if node.MinRank.Present() {
			lg.SetNode(v, &layout.NodeLabel{
				BorderLeft:  []string{node.BorderLeftAt(rank)},
				BorderRight: []string{node.BorderRightAt(rank)},
			})
		}
	}

	return lg
}

// activeOnRank reports whether the node occupies the rank directly or spans
// it as a cluster.
func activeOnRank(node *layout.NodeLabel, rank int) bool {
	if r, ok := node.Rank.Get(); ok && r == rank {
		return true
	}
	min, okMin := node.MinRank.Get()
	max, okMax := node.MaxRank.Get()
	return okMin && okMax && min <= rank && rank <= max
}

// addSubgraphConstraints records, for every node of vs, a constraint edge
// from the cluster previously seen under the same grandparent to the node's
// own ancestor cluster, so later ranks cannot flip sibling clusters.
func addSubgraphConstraints(lg *layerGraph, cg *conflictGraph, vs []string) {
	prev := make(map[string]string)
	rootPrev := ""

	for _, v := range vs {
		child := lg.Parent(v)
		for child != "" {
			parent := lg.Parent(child)
			var prevChild string
			if parent != "" {
				prevChild = prev[parent]
				prev[parent] = child
			} else {
				prevChild = rootPrev
				rootPrev = child
			}
			if prevChild != "" && prevChild != child {
				cg.SetNode(prevChild, struct{}{})
				cg.SetNode(child, struct{}{})
				cg.SetEdge(prevChild, child, struct{}{})
				break
			}
			child = parent
		}
	}
}
