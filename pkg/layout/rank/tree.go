package rank

import (
	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

// TreeNode is the per-node label of a spanning tree. Low and Lim are DFS
// numbers: a node u is a descendant of v exactly when v.Low <= u.Lim <= v.Lim,
// which gives O(1) side-of-cut tests during the simplex iterations.
type TreeNode struct {
	Low, Lim  int
	Parent    string
	HasParent bool
}

// TreeEdge is the per-edge label of a spanning tree.
type TreeEdge struct {
	CutValue float64
}

// Tree is an undirected spanning tree (or forest) over the layout graph's
// node ids.
type Tree = graph.Graph[*TreeNode, *TreeEdge, struct{}]

// NewTree returns an empty spanning tree.
func NewTree() *Tree {
	return graph.New[*TreeNode, *TreeEdge, struct{}](graph.Options{})
}

// FeasibleTree grows a spanning tree whose every edge has zero slack,
// adjusting node ranks as needed. Ranks must already satisfy every edge's
// minimum length, which LongestPath guarantees. Disconnected input yields a
// spanning forest.
func FeasibleTree(g *layout.Graph) *Tree {
	t := NewTree()
	start := g.FirstNodeID()
	if start == "" {
		return t
	}
	size := g.NodeCount()
	t.SetNode(start, &TreeNode{})

	for tightTree(t, g) < size {
		ek, ok := findMinSlackEdge(t, g)
		if !ok {
			// No edge crosses the boundary, so the remaining nodes form
			// separate components. Seed the next one.
			for _, v := range g.NodeIDs() {
				if !t.HasNode(v) {
					t.SetNode(v, &TreeNode{})
					break
				}
			}
			continue
		}
		delta := Slack(g, ek)
		if !t.HasNode(ek.V) {
			delta = -delta
		}
		shiftRanks(t, g, delta)
	}
	return t
}

// tightTree pulls every node reachable through zero-slack edges into the
// tree and returns the tree's node count. Every new node is attached to the
// frontier node whose edge scan discovered it.
func tightTree(t *Tree, g *layout.Graph) int {
	for _, root := range t.NodeIDs() {
		stack := []string{root}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, ek := range g.IncidentEdges(v) {
				w := ek.W
				if w == v {
					w = ek.V
				}
				if t.HasNode(w) || Slack(g, ek) != 0 {
					continue
				}
				t.SetNode(w, &TreeNode{})
				t.SetEdge(v, w, &TreeEdge{})
				stack = append(stack, w)
			}
		}
	}
	return t.NodeCount()
}

// findMinSlackEdge returns the graph edge with minimum slack among those
// with exactly one endpoint in the tree.
func findMinSlackEdge(t *Tree, g *layout.Graph) (graph.EdgeKey, bool) {
	var best graph.EdgeKey
	bestSlack := 0
	found := false
	for _, ek := range g.EdgeKeys() {
		if t.HasNode(ek.V) == t.HasNode(ek.W) {
			continue
		}
		if s := Slack(g, ek); !found || s < bestSlack {
			best, bestSlack, found = ek, s, true
		}
	}
	return best, found
}

func shiftRanks(t *Tree, g *layout.Graph, delta int) {
	for _, v := range t.NodeIDs() {
		node, _ := g.Node(v)
		node.Rank = layout.Int(node.Rank.Or(0) + delta)
	}
}
