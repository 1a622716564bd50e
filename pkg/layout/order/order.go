package order

import (
	"cmp"
	"math"
	"slices"

	"github.com/laminagraph/lamina/pkg/layout"
)

// Run assigns an Order to every ranked node, forming a dense 0..n sequence
// per rank. When the graph label disables the sweep heuristic the initial
// depth-first order is kept as-is. Sweeps stop once four consecutive
// iterations fail to improve the crossing count; the best layering seen is
// written back.
func Run(g *layout.Graph) {
	maxRank := math.MinInt
	nodesByRank := make(map[int][]string)
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		if rank, ok := node.Rank.Get(); ok {
			maxRank = max(maxRank, rank)
			nodesByRank[rank] = append(nodesByRank[rank], v)
		}
		min, okMin := node.MinRank.Get()
		maxR, okMax := node.MaxRank.Get()
		if okMin && okMax {
			for r := min; r <= maxR; r++ {
				if rank, ok := node.Rank.Get(); ok && rank == r {
					continue
				}
				nodesByRank[r] = append(nodesByRank[r], v)
			}
		}
	}
	if maxRank == math.MinInt {
		return
	}

	layering := initOrder(g)
	assignOrder(g, layering)

	if g.Label().DisableOptimalOrderHeuristic {
		return
	}

	var downRanks, upRanks []int
	for r := 1; r <= maxRank; r++ {
		downRanks = append(downRanks, r)
	}
	for r := maxRank - 1; r >= 0; r-- {
		upRanks = append(upRanks, r)
	}

	bestCC := math.Inf(1)
	var best [][]string
	for i, lastBest := 0, 0; lastBest < 4; i, lastBest = i+1, lastBest+1 {
		biasRight := i%4 >= 2
		if i%2 == 1 {
			sweep(g, nodesByRank, downRanks, inEdges, biasRight)
		} else {
			sweep(g, nodesByRank, upRanks, outEdges, biasRight)
		}

		layering := layerMatrix(g, maxRank)
		if cc := crossCount(g, layering); cc < bestCC {
			lastBest = 0
			bestCC = cc
			best = layering
		}
	}

	if best != nil {
		assignOrder(g, best)
	}
}

// sweep re-sorts each rank in turn against the layer the previous step just
// ordered. The constraint graph accumulates sibling-cluster order across
// ranks so one sweep direction cannot flip a cluster back and forth.
func sweep(g *layout.Graph, nodesByRank map[int][]string, ranks []int, rel relationship, biasRight bool) {
	cg := newConflictGraph()
	for _, rank := range ranks {
		nodes := nodesByRank[rank]
		if nodes == nil {
			nodes = []string{}
		}
		lg := buildLayerGraph(g, rank, rel, nodes)
		sorted := sortSubgraph(lg, lg.Label(), cg, biasRight)
		for i, v := range sorted.vs {
			if node, ok := g.Node(v); ok {
				node.Order = layout.Int(i)
			}
		}
		addSubgraphConstraints(lg, cg, sorted.vs)
	}
}

// initOrder seeds every leaf node's order with a depth-first placement:
// leaves are visited in rank order and each DFS appends the nodes it reaches
// to their rank's layer.
func initOrder(g *layout.Graph) [][]string {
	var simple []string
	for _, v := range g.NodeIDs() {
		if !g.HasChildren(v) {
			simple = append(simple, v)
		}
	}

	maxRank := math.MinInt
	for _, v := range simple {
		node, _ := g.Node(v)
		if rank, ok := node.Rank.Get(); ok {
			maxRank = max(maxRank, rank)
		}
	}
	if maxRank == math.MinInt {
		return nil
	}
	layers := make([][]string, maxRank+1)

	visited := make(map[string]bool)
	var dfs func(v string)
	dfs = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		node, _ := g.Node(v)
		rank, ok := node.Rank.Get()
		if !ok {
			return
		}
		if idx := max(rank, 0); idx < len(layers) {
			layers[idx] = append(layers[idx], v)
		}
		for _, w := range g.Successors(v) {
			dfs(w)
		}
	}

	ordered := slices.Clone(simple)
	slices.SortStableFunc(ordered, func(a, b string) int {
		na, _ := g.Node(a)
		nb, _ := g.Node(b)
		return cmp.Compare(na.Rank.Or(math.MaxInt), nb.Rank.Or(math.MaxInt))
	})
	for _, v := range ordered {
		dfs(v)
	}

	return layers
}

func assignOrder(g *layout.Graph, layering [][]string) {
	for _, layer := range layering {
		for i, v := range layer {
			if node, ok := g.Node(v); ok {
				node.Order = layout.Int(i)
			}
		}
	}
}

// layerMatrix snapshots the current order assignment as one node list per
// rank from 0 to maxRank, each sorted by order.
func layerMatrix(g *layout.Graph, maxRank int) [][]string {
	type slot struct {
		order int
		v     string
	}
	layers := make([][]slot, maxRank+1)
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		rank, okRank := node.Rank.Get()
		order, okOrder := node.Order.Get()
		if !okRank || !okOrder {
			continue
		}
		idx := max(rank, 0)
		if idx < len(layers) {
			layers[idx] = append(layers[idx], slot{order: order, v: v})
		}
	}
	out := make([][]string, len(layers))
	for i, layer := range layers {
		slices.SortStableFunc(layer, func(a, b slot) int {
			return cmp.Compare(a.order, b.order)
		})
		row := make([]string, len(layer))
		for j, s := range layer {
			row[j] = s.v
		}
		out[i] = row
	}
	return out
}
