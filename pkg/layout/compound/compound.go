// Package compound holds the cluster-aware pipeline stages: rank-span
// annotation, re-parenting of dummy chains into the clusters their path
// crosses, per-rank border segments along each cluster, and the final
// conversion of border geometry back onto the cluster nodes.
package compound

import (
	"math"

	"github.com/laminagraph/lamina/pkg/layout"
)

// AssignRankSpans copies each cluster's rank span from its nesting border
// nodes onto MinRank/MaxRank. It must run after ranking and before the
// nesting structure is cleaned up beyond recognition of those ids.
func AssignRankSpans(g *layout.Graph) {
	if !g.IsCompound() {
		return
	}
	for _, v := range g.NodeIDs() {
		node, _ := g.Node(v)
		if node.BorderTop == "" || node.BorderBottom == "" {
			continue
		}
		top, okT := g.Node(node.BorderTop)
		bottom, okB := g.Node(node.BorderBottom)
		if !okT || !okB {
			continue
		}
		minRank, okMin := top.Rank.Get()
		maxRank, okMax := bottom.Rank.Get()
		if okMin && okMax {
			node.MinRank = layout.Int(minRank)
			node.MaxRank = layout.Int(maxRank)
		}
	}
}

// postorderNum supports O(1) containment tests over the cluster forest.
type postorderNum struct {
	low, lim int
}

// ParentDummyChains re-parents every dummy chain node to the cluster its
// path through the hierarchy crosses at that rank. The path runs from the
// tail's cluster up to the lowest common ancestor and back down to the
// head's cluster; the walk ascends while clusters end above the dummy's rank
// and descends once the LCA is passed.
func ParentDummyChains(g *layout.Graph) {
	nums := clusterPostorder(g)

	for _, start := range g.Label().DummyChains {
		node, ok := g.Node(start)
		if !ok || node.EdgeKey == nil {
			continue
		}
		key := *node.EdgeKey
		path, lca := findPath(g, nums, key.V, key.W)

		pathIdx := 0
		pathV := pathAt(path, 0)
		ascending := true

		v := start
		for v != key.W {
			node, _ := g.Node(v)
			rank := node.Rank.Or(0)

			if ascending {
				for pathV != lca && maxRankOf(g, pathV) < rank {
					pathIdx++
					pathV = pathAt(path, pathIdx)
				}
				if pathV == lca {
					ascending = false
				}
			}
			if !ascending {
				for pathIdx+1 < len(path) && minRankOf(g, path[pathIdx+1]) <= rank {
					pathIdx++
				}
				pathV = pathAt(path, pathIdx)
			}

			if pathV != "" {
				g.SetParent(v, pathV)
			} else {
				g.ClearParent(v)
			}

			next := g.FirstSuccessor(v)
			if next == "" {
				break
			}
			v = next
		}
	}
}

// findPath returns the cluster path from v's parent chain up to the LCA and
// back down along w's parent chain, plus the LCA itself ("" when the common
// ancestor is the root).
func findPath(g *layout.Graph, nums map[string]postorderNum, v, w string) ([]string, string) {
	vPo := nums[v]
	wPo := nums[w]
	low := min(vPo.low, wPo.low)
	lim := max(vPo.lim, wPo.lim)

	var path []string
	lca := ""
	parent := v
	for {
		parent = g.Parent(parent)
		path = append(path, parent)
		if parent == "" {
			break
		}
		po := nums[parent]
		if po.low <= low && lim <= po.lim {
			lca = parent
			break
		}
	}

	var wPath []string
	cur := w
	for {
		parent := g.Parent(cur)
		if parent == lca || parent == "" {
			break
		}
		wPath = append(wPath, parent)
		cur = parent
	}
	for i := len(wPath) - 1; i >= 0; i-- {
		path = append(path, wPath[i])
	}
	return path, lca
}

// clusterPostorder numbers the cluster forest so that a node u lies inside
// cluster c exactly when c.low <= u.lim <= c.lim.
func clusterPostorder(g *layout.Graph) map[string]postorderNum {
	nums := make(map[string]postorderNum)
	lim := 0
	var dfs func(v string)
	dfs = func(v string) {
		low := lim
		for _, child := range g.Children(v) {
			dfs(child)
		}
		nums[v] = postorderNum{low: low, lim: lim}
		lim++
	}
	for _, v := range g.Children("") {
		dfs(v)
	}
	return nums
}

func pathAt(path []string, i int) string {
	if i < 0 || i >= len(path) {
		return ""
	}
	return path[i]
}

func maxRankOf(g *layout.Graph, v string) int {
	if v == "" {
		return math.MaxInt32 / 2
	}
	node, ok := g.Node(v)
	if !ok {
		return math.MaxInt32 / 2
	}
	if rank, ok := node.MaxRank.Get(); ok {
		return rank
	}
	return math.MaxInt32 / 2
}

func minRankOf(g *layout.Graph, v string) int {
	if v == "" {
		return math.MinInt32 / 2
	}
	node, ok := g.Node(v)
	if !ok {
		return math.MinInt32 / 2
	}
	if rank, ok := node.MinRank.Get(); ok {
		return rank
	}
	return math.MinInt32 / 2
}
