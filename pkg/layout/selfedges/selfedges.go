// Package selfedges handles self-loops, which would otherwise reach the
// ranker as zero-length edges. Loops are stripped before ranking, stashed on
// their node, brought back as "selfedge" dummies once the order within each
// rank is known, and finally turned into a fixed five-point loop path beside
// the node.
package selfedges

import (
	"github.com/laminagraph/lamina/pkg/layout"
)

// Remove strips every self-loop and stashes it on its node.
func Remove(g *layout.Graph) {
	for _, ek := range g.EdgeKeys() {
		if ek.V != ek.W {
			continue
		}
		lbl, _ := g.EdgeLabel(ek)
		node, _ := g.Node(ek.V)
		node.SelfEdges = append(node.SelfEdges, layout.SelfEdge{Key: ek, Label: lbl})
		g.RemoveEdgeKey(ek)
	}
}

// Insert materializes one "selfedge" dummy per stashed loop, placed directly
// after its node in the layer order. Later nodes in the layer shift right to
// make room.
func Insert(g *layout.Graph) {
	for _, layer := range layout.BuildLayerMatrix(g) {
		extra := 0
		for idx, id := range layer {
			node, _ := g.Node(id)
			rank, ok := node.Rank.Get()
			if !ok {
				continue
			}
			node.Order = layout.Int(idx + extra)

			selfEdges := node.SelfEdges
			if len(selfEdges) == 0 {
				continue
			}
			node.SelfEdges = nil

			for _, se := range selfEdges {
				extra++
				key := se.Key
				layout.AddDummyNode(g, layout.DummySelfEdge, &layout.NodeLabel{
					Width:     se.Label.Width,
					Height:    se.Label.Height,
					Rank:      layout.Int(rank),
					Order:     layout.Int(idx + extra),
					EdgeLabel: se.Label,
					EdgeKey:   &key,
				}, "_se")
			}
		}
	}
}

// Position converts every selfedge dummy into a loop path on the original
// edge and removes the dummy. The loop leaves the node's right edge, peaks
// at the dummy's x position and re-enters below.
func Position(g *layout.Graph) {
	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		if node.Dummy != layout.DummySelfEdge {
			continue
		}
		x, okX := node.X.Get()
		y, okY := node.Y.Get()
		if !okX || !okY || node.EdgeKey == nil || node.EdgeLabel == nil {
			continue
		}
		key := *node.EdgeKey
		lbl := node.EdgeLabel
		vNode, ok := g.Node(key.V)
		if !ok {
			continue
		}
		vx, okX := vNode.X.Get()
		vy, okY := vNode.Y.Get()
		if !okX || !okY {
			continue
		}

		right := vx + vNode.Width/2
		mid := vy
		dx := x - right
		dy := vNode.Height / 2

		lbl.Points = []layout.Point{
			{X: right + 2*dx/3, Y: mid - dy},
			{X: right + 5*dx/6, Y: mid - dy},
			{X: right + dx, Y: mid},
			{X: right + 5*dx/6, Y: mid + dy},
			{X: right + 2*dx/3, Y: mid + dy},
		}
		lbl.X = layout.Float(x)
		lbl.Y = layout.Float(y)

		g.SetNamedEdge(key.V, key.W, key.Name, lbl)
		g.RemoveNode(id)
	}
}
