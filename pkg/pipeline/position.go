package pipeline

import (
	"math"

	"github.com/laminagraph/lamina/pkg/layout"
)

// positionY centers each rank vertically on its tallest node and stacks the
// ranks with ranksep between them.
func positionY(g *layout.Graph) {
	rankSep := g.Label().RankSep
	layers := layout.BuildLayerMatrix(g)

	prevY := 0.0
	for i, layer := range layers {
		maxHeight := 0.0
		for _, v := range layer {
			node, _ := g.Node(v)
			if node.Height > maxHeight {
				maxHeight = node.Height
			}
		}
		y := prevY + maxHeight/2
		for _, v := range layer {
			node, _ := g.Node(v)
			node.Y = layout.Float(y)
		}
		prevY += maxHeight
		if i+1 < len(layers) {
			prevY += rankSep
		}
	}
}

// positionX packs each rank left to right in layer order, separating real
// nodes by nodesep and dummy nodes by edgesep, then centers every rank on
// the widest one. The packing is a pure function of the final node order,
// so identical inputs place identically.
func positionX(g *layout.Graph) {
	lbl := g.Label()
	layers := layout.BuildLayerMatrix(g)

	widths := make([]float64, len(layers))
	maxWidth := 0.0
	for i, layer := range layers {
		cursor := 0.0
		for j, v := range layer {
			node, _ := g.Node(v)
			if j > 0 {
				prev, _ := g.Node(layer[j-1])
				cursor += halfSep(lbl, prev) + halfSep(lbl, node)
			}
			node.X = layout.Float(cursor + node.Width/2)
			cursor += node.Width
		}
		widths[i] = cursor
		if cursor > maxWidth {
			maxWidth = cursor
		}
	}

	for i, layer := range layers {
		shift := (maxWidth - widths[i]) / 2
		if shift == 0 {
			continue
		}
		for _, v := range layer {
			node, _ := g.Node(v)
			node.X = layout.Float(node.X.Or(0) + shift)
		}
	}
}

func halfSep(lbl *layout.GraphLabel, node *layout.NodeLabel) float64 {
	if node.Dummy != layout.DummyNone {
		return lbl.EdgeSep / 2
	}
	return lbl.NodeSep / 2
}

// adjustCoordinateSystem prepares an LR/RL graph for the TB positioning
// passes by swapping every box's width and height, including label boxes
// stashed with removed self-loops.
func adjustCoordinateSystem(g *layout.Graph) {
	if g.Label().RankDir.IsHorizontal() {
		swapWidthHeight(g)
	}
}

// undoCoordinateSystem maps the TB coordinates produced by positioning back
// into the requested rank direction.
func undoCoordinateSystem(g *layout.Graph) {
	dir := g.Label().RankDir
	if dir == layout.RankDirBT || dir == layout.RankDirRL {
		reverseY(g)
	}
	if dir.IsHorizontal() {
		swapXY(g)
		swapWidthHeight(g)
	}
}

func swapWidthHeight(g *layout.Graph) {
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		node.Width, node.Height = node.Height, node.Width
		for _, se := range node.SelfEdges {
			se.Label.Width, se.Label.Height = se.Label.Height, se.Label.Width
		}
	}
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		edge.Width, edge.Height = edge.Height, edge.Width
	}
}

func reverseY(g *layout.Graph) {
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		if y, ok := node.Y.Get(); ok {
			node.Y = layout.Float(-y)
		}
	}
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		for i := range edge.Points {
			edge.Points[i].Y = -edge.Points[i].Y
		}
		if y, ok := edge.Y.Get(); ok {
			edge.Y = layout.Float(-y)
		}
	}
}

func swapXY(g *layout.Graph) {
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		x, okX := node.X.Get()
		y, okY := node.Y.Get()
		if okX && okY {
			node.X = layout.Float(y)
			node.Y = layout.Float(x)
		}
	}
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		for i := range edge.Points {
			edge.Points[i].X, edge.Points[i].Y = edge.Points[i].Y, edge.Points[i].X
		}
		x, okX := edge.X.Get()
		y, okY := edge.Y.Get()
		if okX && okY {
			edge.X = layout.Float(y)
			edge.Y = layout.Float(x)
		}
	}
}

// translateGraph shifts everything so the smallest top-left corner lands at
// the configured margins. The extent is taken from node boxes and edge label
// boxes only; interior edge points may keep slightly negative coordinates,
// which matches how spline control points behave in reference renderers.
func translateGraph(g *layout.Graph) {
	minX := math.Inf(1)
	minY := math.Inf(1)
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		x, okX := node.X.Get()
		y, okY := node.Y.Get()
		if !okX || !okY {
			continue
		}
		minX = math.Min(minX, x-node.Width/2)
		minY = math.Min(minY, y-node.Height/2)
	}
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		x, okX := edge.X.Get()
		y, okY := edge.Y.Get()
		if okX && okY {
			minX = math.Min(minX, x-edge.Width/2)
			minY = math.Min(minY, y-edge.Height/2)
		}
	}

	if math.IsInf(minX, 1) || math.IsInf(minY, 1) {
		return
	}

	lbl := g.Label()
	dx := -(minX - lbl.MarginX)
	dy := -(minY - lbl.MarginY)

	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		if x, ok := node.X.Get(); ok {
			node.X = layout.Float(x + dx)
		}
		if y, ok := node.Y.Get(); ok {
			node.Y = layout.Float(y + dy)
		}
	}
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		for i := range edge.Points {
			edge.Points[i].X += dx
			edge.Points[i].Y += dy
		}
		if x, ok := edge.X.Get(); ok {
			edge.X = layout.Float(x + dx)
		}
		if y, ok := edge.Y.Get(); ok {
			edge.Y = layout.Float(y + dy)
		}
	}
}

// assignEdgeGeometry guarantees at least one interior point per edge, adds
// the border intersection points at both endpoints, and places any label
// that did not get coordinates from a dummy chain at the midpoint of its
// point list.
func assignEdgeGeometry(g *layout.Graph) {
	for _, ek := range g.EdgeKeys() {
		vNode, okV := g.Node(ek.V)
		wNode, okW := g.Node(ek.W)
		if !okV || !okW {
			continue
		}
		edge, _ := g.EdgeLabel(ek)

		sx := vNode.X.Or(0)
		sy := vNode.Y.Or(0)
		tx := wNode.X.Or(0)
		ty := wNode.Y.Or(0)

		internal := edge.Points
		if len(internal) == 0 {
			internal = []layout.Point{{X: (sx + tx) / 2, Y: (sy + ty) / 2}}
		}
		first := internal[0]
		last := internal[len(internal)-1]

		points := make([]layout.Point, 0, len(internal)+2)
		points = append(points, layout.IntersectRect(layout.Rect{
			X: sx, Y: sy, Width: vNode.Width, Height: vNode.Height,
		}, first))
		points = append(points, internal...)
		points = append(points, layout.IntersectRect(layout.Rect{
			X: tx, Y: ty, Width: wNode.Width, Height: wNode.Height,
		}, last))
		edge.Points = points

		if (edge.Width > 0 || edge.Height > 0) && !edge.X.Present() && !edge.Y.Present() {
			mid := edge.Points[len(edge.Points)/2]
			x := mid.X
			switch edge.LabelPos {
			case layout.LabelPosLeft:
				x -= edge.LabelOffset + edge.Width/2
			case layout.LabelPosRight:
				x += edge.LabelOffset + edge.Width/2
			}
			edge.X = layout.Float(x)
			edge.Y = layout.Float(mid.Y)
		}
	}
}
