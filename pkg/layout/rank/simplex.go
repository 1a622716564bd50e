package rank

import (
	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

// NetworkSimplex assigns ranks that minimize the total weighted edge length
// subject to every edge's minimum length. It starts from a feasible tight
// tree and repeatedly exchanges a tree edge with negative cut value for the
// minimum-slack non-tree edge crossing the same cut, until no tree edge has
// a negative cut value.
//
// Parallel edges are merged before the iteration; node labels are shared
// with the input graph, so ranks land on the caller's nodes directly.
func NetworkSimplex(g *layout.Graph) {
	sg := layout.Simplify(g)
	LongestPath(sg)
	t := FeasibleTree(sg)
	initLowLimValues(t)
	initCutValues(t, sg)

	for {
		e, ok := leaveEdge(t)
		if !ok {
			break
		}
		f, ok := enterEdge(t, sg, e)
		if !ok {
			break
		}
		exchangeEdges(t, sg, e, f)
	}
}

// initLowLimValues numbers the tree nodes with DFS low/lim values and sets
// parent pointers. Numbering continues across forest components.
func initLowLimValues(t *Tree) {
	visited := make(map[string]bool)
	nextLim := 1
	for _, v := range t.NodeIDs() {
		if !visited[v] {
			nextLim = assignLowLim(t, visited, nextLim, v, "", false)
		}
	}
}

func assignLowLim(t *Tree, visited map[string]bool, nextLim int, v, parent string, hasParent bool) int {
	low := nextLim
	label, _ := t.Node(v)
	visited[v] = true
	for _, w := range t.Neighbors(v) {
		if !visited[w] {
			nextLim = assignLowLim(t, visited, nextLim, w, v, true)
		}
	}
	label.Low = low
	label.Lim = nextLim
	nextLim++
	label.Parent = parent
	label.HasParent = hasParent
	return nextLim
}

// initCutValues computes the cut value of every tree edge bottom-up. The
// postorder guarantees each node's child edges are done before its own
// parent edge, which calcCutValue exploits.
func initCutValues(t *Tree, g *layout.Graph) {
	for _, v := range graph.Postorder(t, t.NodeIDs()) {
		label, _ := t.Node(v)
		if !label.HasParent {
			continue
		}
		edge, _ := t.Edge(v, label.Parent, "")
		edge.CutValue = calcCutValue(t, g, v)
	}
}

// calcCutValue computes the cut value of the tree edge between child and its
// tree parent, reusing the already-computed cut values of the child's other
// tree edges instead of scanning both sides of the cut.
func calcCutValue(t *Tree, g *layout.Graph, child string) float64 {
	childLab, _ := t.Node(child)
	parent := childLab.Parent

	// True when the child is the tail of the underlying graph edge.
	childIsTail := true
	graphEdge, ok := g.Edge(child, parent, "")
	if !ok {
		childIsTail = false
		graphEdge, _ = g.Edge(parent, child, "")
	}

	cutValue := graphEdge.EdgeWeight()
	for _, ek := range g.IncidentEdges(child) {
		isOutEdge := ek.V == child
		other := ek.W
		if !isOutEdge {
			other = ek.V
		}
		if other == parent {
			continue
		}
		pointsToHead := isOutEdge == childIsTail
		lbl, _ := g.EdgeLabel(ek)
		otherWeight := lbl.EdgeWeight()
		if pointsToHead {
			cutValue += otherWeight
		} else {
			cutValue -= otherWeight
		}
		if treeEdge, ok := t.Edge(child, other, ""); ok {
			if pointsToHead {
				cutValue -= treeEdge.CutValue
			} else {
				cutValue += treeEdge.CutValue
			}
		}
	}
	return cutValue
}

// leaveEdge returns the first tree edge with a negative cut value.
func leaveEdge(t *Tree) (graph.EdgeKey, bool) {
	for _, ek := range t.EdgeKeys() {
		lbl, _ := t.EdgeLabel(ek)
		if lbl.CutValue < 0 {
			return ek, true
		}
	}
	return graph.EdgeKey{}, false
}

// enterEdge returns the minimum-slack graph edge that crosses the cut
// induced by the leaving tree edge in the opposite direction.
func enterEdge(t *Tree, g *layout.Graph, e graph.EdgeKey) (graph.EdgeKey, bool) {
	v, w := e.V, e.W
	if !g.HasEdge(v, w, "") {
		// The tree stores edges undirected; orient to the graph's direction.
		v, w = w, v
	}

	vLabel, _ := t.Node(v)
	wLabel, _ := t.Node(w)
	tailLabel := vLabel
	flip := false
	// Pick the side of the cut rooted at the deeper endpoint.
	if vLabel.Lim > wLabel.Lim {
		tailLabel = wLabel
		flip = true
	}

	var best graph.EdgeKey
	bestSlack := 0
	found := false
	for _, ek := range g.EdgeKeys() {
		tail, _ := t.Node(ek.V)
		head, _ := t.Node(ek.W)
		if flip != isDescendant(tail, tailLabel) || flip == isDescendant(head, tailLabel) {
			continue
		}
		if s := Slack(g, ek); !found || s < bestSlack {
			best, bestSlack, found = ek, s, true
		}
	}
	return best, found
}

func exchangeEdges(t *Tree, g *layout.Graph, e, f graph.EdgeKey) {
	t.RemoveEdge(e.V, e.W, "")
	t.SetEdge(f.V, f.W, &TreeEdge{})
	initLowLimValues(t)
	initCutValues(t, g)
	updateRanks(t, g)
}

// updateRanks rewrites every node's rank from its tree parent, walking each
// tree component in preorder from its root.
func updateRanks(t *Tree, g *layout.Graph) {
	var roots []string
	for _, v := range t.NodeIDs() {
		label, _ := t.Node(v)
		if !label.HasParent {
			roots = append(roots, v)
		}
	}
	for _, v := range graph.Preorder(t, roots) {
		label, _ := t.Node(v)
		if !label.HasParent {
			continue
		}
		parent := label.Parent
		parentNode, _ := g.Node(parent)
		node, _ := g.Node(v)

		if edge, ok := g.Edge(parent, v, ""); ok {
			node.Rank = layout.Int(parentNode.Rank.Or(0) + edge.MinLength())
		} else {
			edge, _ = g.Edge(v, parent, "")
			node.Rank = layout.Int(parentNode.Rank.Or(0) - edge.MinLength())
		}
	}
}

func isDescendant(v, root *TreeNode) bool {
	return root.Low <= v.Lim && v.Lim <= root.Lim
}
