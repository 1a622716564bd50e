package compound

import (
	"math"

	"github.com/laminagraph/lamina/pkg/layout"
)

// AddBorderSegments creates one left and one right border dummy per rank a
// cluster spans and chains consecutive same-side dummies so positioning can
// give the cluster straight vertical boundaries. Non-compound graphs are
// left untouched.
func AddBorderSegments(g *layout.Graph) {
	if !g.IsCompound() {
		return
	}
	var dfs func(v string)
	dfs = func(v string) {
		for _, child := range g.Children(v) {
			dfs(child)
		}

		node, _ := g.Node(v)
		minRank, okMin := node.MinRank.Get()
		maxRank, okMax := node.MaxRank.Get()
		if !okMin || !okMax {
			return
		}

		node.BorderLeft = make([]string, max(maxRank, 0)+1)
		node.BorderRight = make([]string, max(maxRank, 0)+1)
		for rank := minRank; rank <= maxRank; rank++ {
			addBorderNode(g, layout.BorderLeft, "_bl", v, node, rank)
			addBorderNode(g, layout.BorderRight, "_br", v, node, rank)
		}
	}
	for _, v := range g.Children("") {
		dfs(v)
	}
}

func addBorderNode(g *layout.Graph, side layout.BorderType, prefix, sg string, sgNode *layout.NodeLabel, rank int) {
	var prev string
	if side == layout.BorderLeft {
		prev = sgNode.BorderLeftAt(rank - 1)
	} else {
		prev = sgNode.BorderRightAt(rank - 1)
	}

	curr := layout.AddDummyNode(g, layout.DummyBorder, &layout.NodeLabel{
		Rank:       layout.Int(rank),
		BorderType: side,
	}, prefix)

	idx := max(rank, 0)
	if side == layout.BorderLeft {
		if idx >= len(sgNode.BorderLeft) {
			sgNode.BorderLeft = append(sgNode.BorderLeft, make([]string, idx+1-len(sgNode.BorderLeft))...)
		}
		sgNode.BorderLeft[idx] = curr
	} else {
		if idx >= len(sgNode.BorderRight) {
			sgNode.BorderRight = append(sgNode.BorderRight, make([]string, idx+1-len(sgNode.BorderRight))...)
		}
		sgNode.BorderRight[idx] = curr
	}

	g.SetParent(curr, sg)
	if prev != "" {
		g.SetEdge(prev, curr, &layout.EdgeLabel{Weight: 1})
	}
}

// RemoveBorderNodes folds the positioned border dummies into each cluster's
// own geometry and then deletes them. Cluster width spans the extreme left
// and right border positions across all ranks; height spans the top and
// bottom borders.
func RemoveBorderNodes(g *layout.Graph) {
	if !g.IsCompound() {
		return
	}
	for _, v := range g.NodeIDs() {
		if !g.HasChildren(v) {
			continue
		}
		node, _ := g.Node(v)
		if node.BorderTop == "" || node.BorderBottom == "" {
			continue
		}
		top, okT := g.Node(node.BorderTop)
		bottom, okB := g.Node(node.BorderBottom)
		if !okT || !okB {
			continue
		}
		topY, okTY := top.Y.Get()
		bottomY, okBY := bottom.Y.Get()
		if !okTY || !okBY {
			continue
		}

		leftX := math.Inf(1)
		for _, id := range node.BorderLeft {
			if id == "" {
				continue
			}
			if b, ok := g.Node(id); ok {
				if x, ok := b.X.Get(); ok {
					leftX = math.Min(leftX, x)
				}
			}
		}
		rightX := math.Inf(-1)
		for _, id := range node.BorderRight {
			if id == "" {
				continue
			}
			if b, ok := g.Node(id); ok {
				if x, ok := b.X.Get(); ok {
					rightX = math.Max(rightX, x)
				}
			}
		}
		if math.IsInf(leftX, 1) || math.IsInf(rightX, -1) {
			continue
		}

		width := math.Abs(rightX - leftX)
		height := math.Abs(bottomY - topY)
		node.Width = width
		node.Height = height
		node.X = layout.Float(leftX + width/2)
		node.Y = layout.Float(topY + height/2)
	}

	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		if node.Dummy == layout.DummyBorder {
			g.RemoveNode(v)
		}
	}
}
