package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/laminagraph/lamina/pkg/layout"
	"github.com/laminagraph/lamina/pkg/layout/acyclic"
	"github.com/laminagraph/lamina/pkg/layout/compound"
	"github.com/laminagraph/lamina/pkg/layout/nesting"
	"github.com/laminagraph/lamina/pkg/layout/normalize"
	"github.com/laminagraph/lamina/pkg/layout/order"
	"github.com/laminagraph/lamina/pkg/layout/rank"
	"github.com/laminagraph/lamina/pkg/layout/selfedges"
)

// Layout runs the full layered layout on g, mutating it in place. When it
// returns, every node carries x/y coordinates and a final rank and order,
// every edge carries a routed point list with endpoint intersections, and
// all synthetic nodes created along the way are gone again.
func Layout(g *layout.Graph) {
	LayoutWithLogger(g, nil)
}

// LayoutWithLogger is Layout with per-stage debug timing on logger. A nil
// logger disables logging.
func LayoutWithLogger(g *layout.Graph, logger *log.Logger) {
	stage := func(name string, fn func()) {
		if logger == nil {
			fn()
			return
		}
		start := time.Now()
		fn()
		logger.Debug("stage complete", "stage", name, "duration", time.Since(start))
	}

	isCompound := g.Options().Compound

	stage("make-space-for-edge-labels", func() { makeSpaceForEdgeLabels(g) })
	stage("remove-self-edges", func() { selfedges.Remove(g) })
	stage("acyclic", func() { acyclic.Run(g) })

	if isCompound {
		stage("nesting-graph", func() { nesting.Run(g) })
	}

	// Ranking runs on a non-compound view so cluster nodes stay out of the
	// ranker's connectivity. The view shares label pointers with g, so leaf
	// ranks land on g directly.
	stage("rank", func() { rank.Rank(layout.AsNonCompound(g)) })

	stage("edge-label-ranks", func() {
		injectEdgeLabelProxies(g)
		layout.RemoveEmptyRanks(g)
		if isCompound {
			nesting.Cleanup(g)
		}
		layout.NormalizeRanks(g)
		removeEdgeLabelProxies(g)
	})

	if isCompound {
		stage("rank-spans", func() { compound.AssignRankSpans(g) })
	}

	stage("normalize", func() { normalize.Run(g) })
	if isCompound {
		stage("parent-dummy-chains", func() { compound.ParentDummyChains(g) })
		stage("border-segments", func() { compound.AddBorderSegments(g) })
	}

	stage("order", func() { order.Run(g) })

	// Positioning runs in top-to-bottom coordinates. The adjust pass maps
	// LR/RL dimensions into TB and the undo pass restores the requested
	// direction afterwards. Self-loop dummies go in after the adjust so
	// their sizes match the active coordinate system.
	stage("position", func() {
		adjustCoordinateSystem(g)
		selfedges.Insert(g)
		positionY(g)
		positionX(g)
		selfedges.Position(g)
		if isCompound {
			compound.RemoveBorderNodes(g)
		}
	})

	stage("undo", func() {
		normalize.Undo(g)
		undoCoordinateSystem(g)
		translateGraph(g)
		assignEdgeGeometry(g)
		acyclic.Undo(g)
	})
}

// makeSpaceForEdgeLabels halves ranksep and doubles every edge's minlen so
// each edge label can get a rank of its own while keeping label proxy ranks
// integral. Off-center labels grow by the label offset along the axis
// perpendicular to the rank direction.
func makeSpaceForEdgeLabels(g *layout.Graph) {
	lbl := g.Label()
	lbl.RankSep /= 2
	horizontal := lbl.RankDir.IsHorizontal()
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		edge.MinLen = edge.MinLength() * 2
		if edge.LabelPos != layout.LabelPosCenter {
			if horizontal {
				edge.Height += edge.LabelOffset
			} else {
				edge.Width += edge.LabelOffset
			}
		}
	}
}

// injectEdgeLabelProxies adds a proxy dummy at the midpoint rank of every
// edge with a non-empty label box. The proxy rides along through rank
// cleanup so the label rank stays correct when ranks shift.
func injectEdgeLabelProxies(g *layout.Graph) {
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		if edge.Width <= 0 || edge.Height <= 0 {
			continue
		}
		vNode, _ := g.Node(ek.V)
		wNode, _ := g.Node(ek.W)
		vRank, okV := vNode.Rank.Get()
		wRank, okW := wNode.Rank.Get()
		if !okV || !okW {
			continue
		}
		key := ek
		layout.AddDummyNode(g, layout.DummyEdgeProxy, &layout.NodeLabel{
			Rank:    layout.Int((wRank-vRank)/2 + vRank),
			Dummy:   layout.DummyEdgeProxy,
			EdgeKey: &key,
		}, "_ep")
	}
}

// removeEdgeLabelProxies deletes the proxies again, recording each proxy's
// final rank on its edge as the label rank.
func removeEdgeLabelProxies(g *layout.Graph) {
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		if node.Dummy != layout.DummyEdgeProxy {
			continue
		}
		if node.EdgeKey != nil {
			if edge, ok := g.EdgeLabel(*node.EdgeKey); ok {
				edge.LabelRank = node.Rank
			}
		}
		g.RemoveNode(v)
	}
}
