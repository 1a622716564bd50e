package graph

// adjacency returns the traversal neighbors of v: successors on directed
// graphs, all neighbors on undirected ones.
func adjacency[N, E, G any](g *Graph[N, E, G], v string) []string {
	if g.IsDirected() {
		return g.Successors(v)
	}
	return g.Neighbors(v)
}

// Preorder returns a depth-first preorder over the nodes reachable from
// roots. Each node appears once, in first-visit order.
func Preorder[N, E, G any](g *Graph[N, E, G], roots []string) []string {
	visited := make(map[string]bool)
	var out []string
	var dfs func(v string)
	dfs = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		out = append(out, v)
		for _, w := range adjacency(g, v) {
			dfs(w)
		}
	}
	for _, r := range roots {
		dfs(r)
	}
	return out
}

// Postorder returns a depth-first postorder over the nodes reachable from
// roots: children appear before the node they were reached from.
func Postorder[N, E, G any](g *Graph[N, E, G], roots []string) []string {
	visited := make(map[string]bool)
	var out []string
	var dfs func(v string)
	dfs = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		for _, w := range adjacency(g, v) {
			dfs(w)
		}
		out = append(out, v)
	}
	for _, r := range roots {
		dfs(r)
	}
	return out
}

// Components returns the weakly connected components of g, each a list of
// node ids. Component order and membership order are deterministic: both
// follow node insertion order.
func Components[N, E, G any](g *Graph[N, E, G]) [][]string {
	seen := make(map[string]bool)
	var out [][]string
	for _, start := range g.NodeIDs() {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []string{}
		queue := []string{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, w := range g.Successors(v) {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
			for _, w := range g.Predecessors(v) {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// IsAcyclic reports whether the directed graph contains no cycles.
// Self-loops count as cycles.
func IsAcyclic[N, E, G any](g *Graph[N, E, G]) bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, g.NodeCount())
	var hasCycle bool
	var dfs func(v string)
	dfs = func(v string) {
		color[v] = gray
		for _, w := range g.Successors(v) {
			switch color[w] {
			case white:
				dfs(w)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[v] = black
	}
	for _, v := range g.NodeIDs() {
		if color[v] == white {
			dfs(v)
			if hasCycle {
				return false
			}
		}
	}
	return true
}
