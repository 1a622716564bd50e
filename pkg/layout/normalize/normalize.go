// Package normalize splits edges spanning several ranks into chains of
// rank-adjacent dummy nodes, and can later collapse each chain back into its
// original edge with the routed geometry attached.
package normalize

import (
	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

// Run replaces every multi-rank edge with a chain of "edge" dummies, one per
// intermediate rank. The dummy at the edge's label rank is upgraded to an
// "edge-label" dummy sized to the label box. The first dummy of each chain
// is recorded on the graph label for Undo.
func Run(g *layout.Graph) {
	g.Label().DummyChains = nil
	for _, ek := range g.EdgeKeys() {
		normalizeEdge(g, ek)
	}
}

func normalizeEdge(g *layout.Graph, ek graph.EdgeKey) {
	vNode, _ := g.Node(ek.V)
	wNode, _ := g.Node(ek.W)
	vRank := vNode.Rank.Or(0)
	wRank := wNode.Rank.Or(0)

	if wRank == vRank+1 {
		return
	}

	lbl, _ := g.EdgeLabel(ek)
	g.RemoveEdgeKey(ek)
	lbl.Points = nil

	key := ek
	prev := ek.V
	first := true
	for r := vRank + 1; r < wRank; r++ {
		node := &layout.NodeLabel{
			Rank:      layout.Int(r),
			Dummy:     layout.DummyEdge,
			EdgeLabel: lbl,
			EdgeKey:   &key,
		}
		if rank, ok := lbl.LabelRank.Get(); ok && rank == r {
			node.Width = lbl.Width
			node.Height = lbl.Height
			node.Dummy = layout.DummyEdgeLabel
			node.LabelPos = lbl.LabelPos
		}
		dummy := layout.AddDummyNode(g, node.Dummy, node, "_d")
		if first {
			first = false
			label := g.Label()
			label.DummyChains = append(label.DummyChains, dummy)
		}

		g.SetNamedEdge(prev, dummy, ek.Name, &layout.EdgeLabel{Weight: lbl.Weight})
		prev = dummy
	}

	g.SetNamedEdge(prev, ek.W, ek.Name, &layout.EdgeLabel{Weight: lbl.Weight})
}

// Undo walks each recorded dummy chain, folds every dummy's position into
// the original edge's point list, removes the dummies and restores the edge.
func Undo(g *layout.Graph) {
	for _, start := range g.Label().DummyChains {
		node, ok := g.Node(start)
		if !ok || node.EdgeLabel == nil || node.EdgeKey == nil {
			continue
		}
		lbl := node.EdgeLabel
		key := *node.EdgeKey

		v := start
		for v != "" {
			node, ok := g.Node(v)
			if !ok || node.Dummy == layout.DummyNone {
				break
			}
			w := g.FirstSuccessor(v)

			if x, okX := node.X.Get(); okX {
				if y, okY := node.Y.Get(); okY {
					lbl.Points = append(lbl.Points, layout.Point{X: x, Y: y})
					if node.Dummy == layout.DummyEdgeLabel {
						lbl.X = layout.Float(x)
						lbl.Y = layout.Float(y)
						lbl.Width = node.Width
						lbl.Height = node.Height
					}
				}
			}

			g.RemoveNode(v)
			v = w
		}

		g.SetEdgeKey(key, lbl)
	}
	g.Label().DummyChains = nil
}
