package order

import (
	"cmp"
	"slices"

	"github.com/laminagraph/lamina/pkg/layout"
)

// crossCount returns the weighted number of edge crossings the layering
// implies, summed over adjacent layer pairs.
func crossCount(g *layout.Graph, layering [][]string) float64 {
	var cc float64
	for i := 1; i < len(layering); i++ {
		cc += twoLayerCrossCount(g, layering[i-1], layering[i])
	}
	return cc
}

// twoLayerCrossCount counts crossings between one layer pair with the
// accumulator-tree method of Barth, Jünger and Mutzel: edges are visited in
// (north position, south position) order and each edge picks up the weight
// of the already-seen edges it crosses.
func twoLayerCrossCount(g *layout.Graph, north, south []string) float64 {
	if len(south) == 0 {
		return 0
	}

	southPos := make(map[string]int, len(south))
	for i, v := range south {
		southPos[v] = i
	}

	type southEntry struct {
		pos    int
		weight float64
	}
	var southEntries []southEntry
	for _, v := range north {
		var entries []southEntry
		for _, ek := range g.OutEdges(v) {
			pos, ok := southPos[ek.W]
			if !ok {
				continue
			}
			lbl, _ := g.EdgeLabel(ek)
			entries = append(entries, southEntry{pos: pos, weight: lbl.EdgeWeight()})
		}
		slices.SortStableFunc(entries, func(a, b southEntry) int {
			return cmp.Compare(a.pos, b.pos)
		})
		southEntries = append(southEntries, entries...)
	}

	firstIndex := 1
	for firstIndex < len(south) {
		firstIndex <<= 1
	}
	tree := make([]float64, 2*firstIndex-1)
	firstIndex--

	var cc float64
	for _, entry := range southEntries {
		index := entry.pos + firstIndex
		tree[index] += entry.weight
		var weightSum float64
		for index > 0 {
			if index%2 == 1 {
				weightSum += tree[index+1]
			}
			index = (index - 1) >> 1
			tree[index] += entry.weight
		}
		cc += entry.weight * weightSum
	}
	return cc
}
