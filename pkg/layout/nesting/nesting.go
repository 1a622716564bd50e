// Package nesting prepares a compound graph for ranking. It adds a synthetic
// root plus border-top and border-bottom nodes per cluster and connects them
// with weighted minimum-length edges so that every cluster's content ends up
// in a contiguous rank band and the graph is connected before the ranker
// runs. Cleanup strips the synthetic structure once ranks are assigned.
package nesting

import (
	"github.com/laminagraph/lamina/pkg/layout"
)

// Run augments g in place. The rank scale factor it applies is recorded on
// the graph label so empty-rank removal can later tell reserved border ranks
// from genuinely unused ones.
func Run(g *layout.Graph) {
	root := layout.AddDummyNode(g, layout.DummyRoot, &layout.NodeLabel{}, "_root")
	depths := treeDepths(g)
	height := 0
	for _, d := range depths {
		height = max(height, d-1)
	}
	nodeSep := 2*height + 1

	label := g.Label()
	label.NestingRoot = root

	// Scale every minlen so real nodes land between border ranks.
	for _, ek := range g.EdgeKeys() {
		lbl, _ := g.EdgeLabel(ek)
		lbl.MinLen = lbl.MinLength() * nodeSep
	}

	weight := sumWeights(g) + 1
	for _, child := range g.Children("") {
		if child != root {
			dfs(g, root, nodeSep, weight, height, depths, child)
		}
	}

	label.NodeRankFactor = nodeSep
}

// Cleanup removes the nesting root and every nesting edge.
func Cleanup(g *layout.Graph) {
	label := g.Label()
	g.RemoveNode(label.NestingRoot)
	label.NestingRoot = ""
	for _, ek := range g.EdgeKeys() {
		if lbl, _ := g.EdgeLabel(ek); lbl.NestingEdge {
			g.RemoveEdgeKey(ek)
		}
	}
}

func dfs(g *layout.Graph, root string, nodeSep int, weight float64, height int, depths map[string]int, v string) {
	children := g.Children(v)
	if len(children) == 0 {
		if v != root {
			g.SetEdge(root, v, &layout.EdgeLabel{Weight: 0, MinLen: nodeSep})
		}
		return
	}

	top := addBorderNode(g, "_bt")
	bottom := addBorderNode(g, "_bb")
	node, _ := g.Node(v)
	g.SetParent(top, v)
	node.BorderTop = top
	g.SetParent(bottom, v)
	node.BorderBottom = bottom

	for _, child := range children {
		dfs(g, root, nodeSep, weight, height, depths, child)

		childNode, _ := g.Node(child)
		childTop, childBottom := child, child
		thisWeight := 2 * weight
		if childNode.BorderTop != "" {
			childTop = childNode.BorderTop
			childBottom = childNode.BorderBottom
			thisWeight = weight
		}
		minlen := 1
		if childTop == childBottom {
			minlen = height - depths[v] + 1
		}
		g.SetEdge(top, childTop, &layout.EdgeLabel{
			Weight:      thisWeight,
			MinLen:      minlen,
			NestingEdge: true,
		})
		g.SetEdge(childBottom, bottom, &layout.EdgeLabel{
			Weight:      thisWeight,
			MinLen:      minlen,
			NestingEdge: true,
		})
	}

	if g.Parent(v) == "" {
		g.SetEdge(root, top, &layout.EdgeLabel{Weight: 0, MinLen: height + depths[v]})
	}
}

// treeDepths assigns every node its depth in the cluster forest, 1 at the
// top level.
func treeDepths(g *layout.Graph) map[string]int {
	depths := make(map[string]int)
	var walk func(v string, depth int)
	walk = func(v string, depth int) {
		for _, child := range g.Children(v) {
			walk(child, depth+1)
		}
		depths[v] = depth
	}
	for _, v := range g.Children("") {
		walk(v, 1)
	}
	return depths
}

func sumWeights(g *layout.Graph) float64 {
	total := 0.0
	for _, ek := range g.EdgeKeys() {
		lbl, _ := g.EdgeLabel(ek)
		total += lbl.EdgeWeight()
	}
	return total
}

func addBorderNode(g *layout.Graph, prefix string) string {
	return layout.AddDummyNode(g, layout.DummyBorder, &layout.NodeLabel{}, prefix)
}
