package graph

import "slices"

// Options configures the behavior of a Graph at construction time.
type Options struct {
	// Directed controls whether edges are ordered pairs. Undirected graphs
	// store each edge under a canonical orientation so (v,w) and (w,v)
	// address the same edge.
	Directed bool
	// Multigraph allows multiple edges between the same ordered pair,
	// distinguished by EdgeKey.Name.
	Multigraph bool
	// Compound enables the parent/child node hierarchy.
	Compound bool
}

// Directed returns the default options for a plain directed graph.
func DirectedOptions() Options { return Options{Directed: true} }

// EdgeKey addresses a single edge. Name is only meaningful on multigraphs;
// it is empty for unnamed edges. Equality is structural.
type EdgeKey struct {
	V    string // tail node id
	W    string // head node id
	Name string
}

// Graph is a mutable graph with node labels N, edge labels E, and a single
// graph-level label G.
type Graph[N, E, G any] struct {
	opts  Options
	label G

	nodes   map[string]N
	nodeIDs []string

	edges    map[EdgeKey]E
	edgeKeys []EdgeKey

	out map[string][]EdgeKey
	in  map[string][]EdgeKey

	parent   map[string]string
	children map[string][]string
	roots    []string // top-level nodes in insertion order (compound only)
}

// New creates an empty graph with the given options.
func New[N, E, G any](opts Options) *Graph[N, E, G] {
	return &Graph[N, E, G]{
		opts:     opts,
		nodes:    make(map[string]N),
		edges:    make(map[EdgeKey]E),
		out:      make(map[string][]EdgeKey),
		in:       make(map[string][]EdgeKey),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

// Options returns the graph's construction options.
func (g *Graph[N, E, G]) Options() Options { return g.opts }

// IsDirected reports whether the graph's edges are ordered pairs.
func (g *Graph[N, E, G]) IsDirected() bool { return g.opts.Directed }

// IsMultigraph reports whether named parallel edges are allowed.
func (g *Graph[N, E, G]) IsMultigraph() bool { return g.opts.Multigraph }

// IsCompound reports whether the parent/child hierarchy is enabled.
func (g *Graph[N, E, G]) IsCompound() bool { return g.opts.Compound }

// SetLabel sets the graph-level label.
func (g *Graph[N, E, G]) SetLabel(label G) { g.label = label }

// Label returns the graph-level label.
func (g *Graph[N, E, G]) Label() G { return g.label }

// NodeCount returns the number of nodes.
func (g *Graph[N, E, G]) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph[N, E, G]) EdgeCount() int { return len(g.edges) }

// SetNode adds a node or, if the id already exists, replaces its label in
// place (insertion position is preserved).
func (g *Graph[N, E, G]) SetNode(id string, label N) {
	if _, ok := g.nodes[id]; ok {
		g.nodes[id] = label
		return
	}
	g.nodes[id] = label
	g.nodeIDs = append(g.nodeIDs, id)
	if g.opts.Compound {
		g.roots = append(g.roots, id)
	}
}

// Node returns the label for id and whether the node exists.
func (g *Graph[N, E, G]) Node(id string) (N, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether the node exists.
func (g *Graph[N, E, G]) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns all node ids in insertion order. The slice is a copy.
func (g *Graph[N, E, G]) NodeIDs() []string { return slices.Clone(g.nodeIDs) }

// FirstNodeID returns the first-inserted node id, or "" for an empty graph.
func (g *Graph[N, E, G]) FirstNodeID() string {
	if len(g.nodeIDs) == 0 {
		return ""
	}
	return g.nodeIDs[0]
}

// RemoveNode deletes the node, all incident edges, and its hierarchy links.
// Children of a removed compound node become top-level nodes. Removing an
// unknown id is a no-op.
func (g *Graph[N, E, G]) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, ek := range slices.Clone(g.out[id]) {
		g.RemoveEdgeKey(ek)
	}
	for _, ek := range slices.Clone(g.in[id]) {
		g.RemoveEdgeKey(ek)
	}
	if g.opts.Compound {
		g.detachParent(id)
		for _, c := range slices.Clone(g.children[id]) {
			delete(g.parent, c)
			g.roots = append(g.roots, c)
		}
		delete(g.children, id)
	}
	delete(g.nodes, id)
	delete(g.out, id)
	delete(g.in, id)
	g.nodeIDs = remove(g.nodeIDs, id)
}

// canonical maps an edge triple onto the key it is stored under. Undirected
// graphs order the endpoints lexicographically; non-multigraphs drop names.
func (g *Graph[N, E, G]) canonical(v, w, name string) EdgeKey {
	if !g.opts.Directed && w < v {
		v, w = w, v
	}
	if !g.opts.Multigraph {
		name = ""
	}
	return EdgeKey{V: v, W: w, Name: name}
}

// SetEdge adds or replaces the unnamed edge v->w. Both endpoints must already
// exist; the edge is silently dropped otherwise (the container's construction
// invariants are the caller's contract).
func (g *Graph[N, E, G]) SetEdge(v, w string, label E) {
	g.SetNamedEdge(v, w, "", label)
}

// SetNamedEdge adds or replaces the edge v->w with the given multigraph name.
func (g *Graph[N, E, G]) SetNamedEdge(v, w, name string, label E) {
	if !g.HasNode(v) || !g.HasNode(w) {
		return
	}
	ek := g.canonical(v, w, name)
	if _, ok := g.edges[ek]; ok {
		g.edges[ek] = label
		return
	}
	g.edges[ek] = label
	g.edgeKeys = append(g.edgeKeys, ek)
	g.out[ek.V] = append(g.out[ek.V], ek)
	g.in[ek.W] = append(g.in[ek.W], ek)
}

// SetEdgeKey adds or replaces the edge addressed by ek.
func (g *Graph[N, E, G]) SetEdgeKey(ek EdgeKey, label E) {
	g.SetNamedEdge(ek.V, ek.W, ek.Name, label)
}

// Edge returns the label of edge v->w (with the given name) and whether it
// exists.
func (g *Graph[N, E, G]) Edge(v, w, name string) (E, bool) {
	e, ok := g.edges[g.canonical(v, w, name)]
	return e, ok
}

// EdgeLabel returns the label stored under ek.
func (g *Graph[N, E, G]) EdgeLabel(ek EdgeKey) (E, bool) {
	e, ok := g.edges[g.canonical(ek.V, ek.W, ek.Name)]
	return e, ok
}

// HasEdge reports whether edge v->w (with the given name) exists.
func (g *Graph[N, E, G]) HasEdge(v, w, name string) bool {
	_, ok := g.edges[g.canonical(v, w, name)]
	return ok
}

// EdgeKeys returns every edge key in insertion order. The slice is a copy.
func (g *Graph[N, E, G]) EdgeKeys() []EdgeKey { return slices.Clone(g.edgeKeys) }

// RemoveEdge deletes the edge v->w with the given name, if present.
func (g *Graph[N, E, G]) RemoveEdge(v, w, name string) {
	g.RemoveEdgeKey(EdgeKey{V: v, W: w, Name: name})
}

// RemoveEdgeKey deletes the edge addressed by ek, if present.
func (g *Graph[N, E, G]) RemoveEdgeKey(ek EdgeKey) {
	ek = g.canonical(ek.V, ek.W, ek.Name)
	if _, ok := g.edges[ek]; !ok {
		return
	}
	delete(g.edges, ek)
	g.edgeKeys = removeKey(g.edgeKeys, ek)
	g.out[ek.V] = removeKey(g.out[ek.V], ek)
	g.in[ek.W] = removeKey(g.in[ek.W], ek)
}

// OutEdges returns the edges whose stored tail is v, in insertion order.
func (g *Graph[N, E, G]) OutEdges(v string) []EdgeKey { return slices.Clone(g.out[v]) }

// InEdges returns the edges whose stored head is v, in insertion order.
func (g *Graph[N, E, G]) InEdges(v string) []EdgeKey { return slices.Clone(g.in[v]) }

// OutEdgesTo returns the edges from v to w, in insertion order. On a
// multigraph this may return several keys.
func (g *Graph[N, E, G]) OutEdgesTo(v, w string) []EdgeKey {
	var out []EdgeKey
	for _, ek := range g.out[v] {
		if ek.W == w {
			out = append(out, ek)
		}
	}
	return out
}

// IncidentEdges returns out-edges followed by in-edges of v. Self-loops
// appear once.
func (g *Graph[N, E, G]) IncidentEdges(v string) []EdgeKey {
	out := slices.Clone(g.out[v])
	for _, ek := range g.in[v] {
		if ek.V == ek.W {
			continue
		}
		out = append(out, ek)
	}
	return out
}

// Successors returns the distinct heads of v's out-edges in first-edge order.
func (g *Graph[N, E, G]) Successors(v string) []string {
	var out []string
	for _, ek := range g.out[v] {
		if !slices.Contains(out, ek.W) {
			out = append(out, ek.W)
		}
	}
	return out
}

// FirstSuccessor returns the head of v's first out-edge, or "".
func (g *Graph[N, E, G]) FirstSuccessor(v string) string {
	if edges := g.out[v]; len(edges) > 0 {
		return edges[0].W
	}
	return ""
}

// Predecessors returns the distinct tails of v's in-edges in first-edge order.
func (g *Graph[N, E, G]) Predecessors(v string) []string {
	var out []string
	for _, ek := range g.in[v] {
		if !slices.Contains(out, ek.V) {
			out = append(out, ek.V)
		}
	}
	return out
}

// Neighbors returns the distinct nodes adjacent to v (in either direction),
// in first-edge order.
func (g *Graph[N, E, G]) Neighbors(v string) []string {
	var out []string
	add := func(id string) {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	for _, ek := range g.out[v] {
		add(other(ek, v))
	}
	for _, ek := range g.in[v] {
		add(other(ek, v))
	}
	return out
}

// Sources returns nodes with no in-edges, in insertion order.
func (g *Graph[N, E, G]) Sources() []string {
	var out []string
	for _, id := range g.nodeIDs {
		if len(g.in[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Sinks returns nodes with no out-edges, in insertion order.
func (g *Graph[N, E, G]) Sinks() []string {
	var out []string
	for _, id := range g.nodeIDs {
		if len(g.out[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// SetParent makes parent the parent of child. Both must exist and the graph
// must be compound. Passing an empty parent clears the assignment.
func (g *Graph[N, E, G]) SetParent(child, parent string) {
	if !g.opts.Compound || !g.HasNode(child) {
		return
	}
	if parent == "" {
		g.ClearParent(child)
		return
	}
	if !g.HasNode(parent) {
		return
	}
	g.detachParent(child)
	g.parent[child] = parent
	g.children[parent] = append(g.children[parent], child)
}

// ClearParent makes child a top-level node.
func (g *Graph[N, E, G]) ClearParent(child string) {
	if !g.opts.Compound || !g.HasNode(child) {
		return
	}
	g.detachParent(child)
	g.roots = append(g.roots, child)
}

func (g *Graph[N, E, G]) detachParent(child string) {
	if p, ok := g.parent[child]; ok {
		g.children[p] = remove(g.children[p], child)
		delete(g.parent, child)
		return
	}
	g.roots = remove(g.roots, child)
}

// Parent returns the parent of v, or "" if v is top-level or unknown.
func (g *Graph[N, E, G]) Parent(v string) string { return g.parent[v] }

// Children returns the children of v in insertion order. An empty id returns
// the top-level nodes. The slice is a copy.
func (g *Graph[N, E, G]) Children(v string) []string {
	if v == "" {
		if !g.opts.Compound {
			return g.NodeIDs()
		}
		return slices.Clone(g.roots)
	}
	return slices.Clone(g.children[v])
}

// HasChildren reports whether v has at least one child.
func (g *Graph[N, E, G]) HasChildren(v string) bool { return len(g.children[v]) > 0 }

func other(ek EdgeKey, v string) string {
	if ek.V == v {
		return ek.W
	}
	return ek.V
}

func remove(s []string, v string) []string {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

func removeKey(s []EdgeKey, ek EdgeKey) []EdgeKey {
	if i := slices.Index(s, ek); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
