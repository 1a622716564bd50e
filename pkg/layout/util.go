package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/laminagraph/lamina/pkg/graph"
)

// UniqueNodeID returns prefix, or the first "prefix1", "prefix2", ... not yet
// used as a node id. Ids are derived from graph state only, so repeated runs
// over the same input mint the same names.
func UniqueNodeID(g *Graph, prefix string) string {
	if !g.HasNode(prefix) {
		return prefix
	}
	for i := 1; ; i++ {
		id := fmt.Sprintf("%s%d", prefix, i)
		if !g.HasNode(id) {
			return id
		}
	}
}

// AddDummyNode inserts a synthetic node tagged with kind and returns its id.
func AddDummyNode(g *Graph, kind Dummy, label *NodeLabel, prefix string) string {
	id := UniqueNodeID(g, prefix)
	label.Dummy = kind
	g.SetNode(id, label)
	return id
}

// Simplify collapses a multigraph into a plain weighted graph: parallel edges
// between the same ordered pair are merged by summing weights and taking the
// maximum minlen. Merged edges are inserted in sorted (tail, head) order so
// later edge scans are reproducible. Node labels are shared, not copied.
func Simplify(g *Graph) *Graph {
	simplified := graph.New[*NodeLabel, *EdgeLabel, *GraphLabel](graph.Options{Directed: true})
	simplified.SetLabel(g.Label())
	for _, v := range g.NodeIDs() {
		lbl, _ := g.Node(v)
		simplified.SetNode(v, lbl)
	}

	type pair struct{ v, w string }
	merged := make(map[pair]*EdgeLabel)
	var pairs []pair
	for _, ek := range g.EdgeKeys() {
		lbl, _ := g.EdgeLabel(ek)
		p := pair{ek.V, ek.W}
		if prev, ok := merged[p]; ok {
			prev.Weight += lbl.EdgeWeight()
			prev.MinLen = max(prev.MinLen, lbl.MinLength())
			continue
		}
		merged[p] = &EdgeLabel{Weight: lbl.EdgeWeight(), MinLen: lbl.MinLength()}
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if c := strings.Compare(a.v, b.v); c != 0 {
			return c
		}
		return strings.Compare(a.w, b.w)
	})
	for _, p := range pairs {
		simplified.SetEdge(p.v, p.w, merged[p])
	}
	return simplified
}

// AsNonCompound returns a view of g without the cluster hierarchy: only leaf
// nodes are kept, with their labels shared. Edges keep their multigraph names.
func AsNonCompound(g *Graph) *Graph {
	out := graph.New[*NodeLabel, *EdgeLabel, *GraphLabel](graph.Options{
		Directed:   true,
		Multigraph: g.IsMultigraph(),
	})
	out.SetLabel(g.Label())
	for _, v := range g.NodeIDs() {
		if len(g.Children(v)) == 0 {
			lbl, _ := g.Node(v)
			out.SetNode(v, lbl)
		}
	}
	for _, ek := range g.EdgeKeys() {
		lbl, _ := g.EdgeLabel(ek)
		out.SetNamedEdge(ek.V, ek.W, ek.Name, lbl)
	}
	return out
}

// BuildLayerMatrix returns one slice of node ids per rank, lowest rank first,
// each sorted by order. Nodes without a rank are skipped. Negative ranks are
// supported by shifting the matrix.
func BuildLayerMatrix(g *Graph) [][]string {
	type entry struct {
		rank  int
		order int
		id    string
	}
	minRank, maxRank := 0, 0
	seen := false
	var entries []entry
	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		rank, ok := node.Rank.Get()
		if !ok {
			continue
		}
		if !seen {
			minRank, maxRank = rank, rank
			seen = true
		} else {
			minRank = min(minRank, rank)
			maxRank = max(maxRank, rank)
		}
		entries = append(entries, entry{rank, node.Order.Or(0), id})
	}
	if !seen {
		return nil
	}

	// Only negative ranks shift the matrix; a positive minimum keeps its
	// leading empty layers.
	shift := 0
	if minRank < 0 {
		shift = -minRank
	}
	layers := make([][]entry, maxRank+shift+1)
	for _, e := range entries {
		idx := e.rank + shift
		if idx >= 0 && idx < len(layers) {
			layers[idx] = append(layers[idx], e)
		}
	}
	out := make([][]string, len(layers))
	for i, layer := range layers {
		slices.SortStableFunc(layer, func(a, b entry) int { return a.order - b.order })
		ids := make([]string, len(layer))
		for j, e := range layer {
			ids[j] = e.id
		}
		out[i] = ids
	}
	return out
}

// NormalizeRanks shifts every rank so the smallest becomes zero.
func NormalizeRanks(g *Graph) {
	minRank := 0
	seen := false
	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		if rank, ok := node.Rank.Get(); ok {
			if !seen || rank < minRank {
				minRank = rank
			}
			seen = true
		}
	}
	if !seen {
		return
	}
	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		if rank, ok := node.Rank.Get(); ok {
			node.Rank = Int(rank - minRank)
		}
	}
}

// RemoveEmptyRanks collapses unused ranks. Ranks that are multiples of the
// nesting rank factor are preserved even when empty, since the nesting graph
// reserved them for cluster borders.
func RemoveEmptyRanks(g *Graph) {
	factor := g.Label().NodeRankFactor
	if factor <= 0 {
		return
	}

	offset := 0
	seen := false
	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		if rank, ok := node.Rank.Get(); ok {
			if !seen || rank < offset {
				offset = rank
			}
			seen = true
		}
	}
	if !seen {
		return
	}

	maxIdx := 0
	layers := make(map[int][]string)
	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		rank, ok := node.Rank.Get()
		if !ok {
			continue
		}
		idx := rank - offset
		maxIdx = max(maxIdx, idx)
		layers[idx] = append(layers[idx], id)
	}

	delta := 0
	for i := 0; i <= maxIdx; i++ {
		vs, occupied := layers[i]
		if !occupied && i%factor != 0 {
			delta--
			continue
		}
		if delta == 0 {
			continue
		}
		for _, v := range vs {
			node, _ := g.Node(v)
			if rank, ok := node.Rank.Get(); ok {
				node.Rank = Int(rank + delta)
			}
		}
	}
}

// IntersectRect returns the point where a line from the rectangle's center
// toward point crosses the rectangle's boundary. A degenerate rectangle or a
// point at the center yields a deterministic point on the right edge rather
// than an error.
func IntersectRect(rect Rect, point Point) Point {
	x, y := rect.X, rect.Y
	dx := point.X - x
	dy := point.Y - y
	w := rect.Width / 2
	h := rect.Height / 2

	if dx == 0 && dy == 0 {
		return Point{X: x + w, Y: y}
	}

	var sx, sy float64
	if abs(dy)*w > abs(dx)*h {
		if dy < 0 {
			h = -h
		}
		sx, sy = h*dx/dy, h
	} else {
		if dx < 0 {
			w = -w
		}
		sx, sy = w, w*dy/dx
	}
	return Point{X: x + sx, Y: y + sy}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
