package order

import (
	"slices"
	"testing"

	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

func newGraph() *layout.Graph {
	return layout.NewGraph(graph.Options{Directed: true, Multigraph: true})
}

func setRank(g *layout.Graph, rank int, ids ...string) {
	for _, id := range ids {
		g.SetNode(id, &layout.NodeLabel{Rank: layout.Int(rank)})
	}
}

func TestInitOrderPlacesNodesDepthFirst(t *testing.T) {
	g := newGraph()
	setRank(g, 0, "a")
	setRank(g, 1, "b")
	setRank(g, 0, "c")
	setRank(g, 1, "d")
	g.SetEdge("a", "b", layout.NewEdgeLabel())
	g.SetEdge("c", "d", layout.NewEdgeLabel())
	g.SetEdge("a", "d", layout.NewEdgeLabel())

	layering := initOrder(g)

	want := [][]string{{"a", "c"}, {"b", "d"}}
	if !slices.EqualFunc(layering, want, slices.Equal) {
		t.Errorf("initOrder = %v, want %v", layering, want)
	}
}

func TestResolveConflictsMergesConstrainedChain(t *testing.T) {
	entries := []barycenterEntry{
		{v: "a", barycenter: layout.Float(4), weight: layout.Float(1)},
		{v: "b", barycenter: layout.Float(3), weight: layout.Float(1)},
		{v: "c", barycenter: layout.Float(2), weight: layout.Float(1)},
		{v: "d", barycenter: layout.Float(1), weight: layout.Float(1)},
	}
	cg := newConflictGraph()
	for _, pair := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}} {
		cg.SetNode(pair[0], struct{}{})
		cg.SetNode(pair[1], struct{}{})
		cg.SetEdge(pair[0], pair[1], struct{}{})
	}

	out := resolveConflicts(entries, cg)

	if len(out) != 1 {
		t.Fatalf("resolved entries = %d, want one merged supernode", len(out))
	}
	got := out[0]
	if !slices.Equal(got.vs, []string{"a", "b", "c", "d"}) {
		t.Errorf("merged vs = %v, want [a b c d]", got.vs)
	}
	if bc := got.barycenter.Or(-1); bc != 2.5 {
		t.Errorf("merged barycenter = %v, want 2.5", bc)
	}
	if w := got.weight.Or(-1); w != 4 {
		t.Errorf("merged weight = %v, want 4", w)
	}
	if got.i != 0 {
		t.Errorf("merged i = %d, want 0", got.i)
	}
}

func TestResolveConflictsWithoutConstraints(t *testing.T) {
	entries := []barycenterEntry{
		{v: "a", barycenter: layout.Float(2), weight: layout.Float(1)},
		{v: "b", barycenter: layout.Float(1), weight: layout.Float(1)},
	}

	out := resolveConflicts(entries, newConflictGraph())

	if len(out) != 2 {
		t.Fatalf("resolved entries = %d, want 2", len(out))
	}
	for _, entry := range out {
		if len(entry.vs) != 1 {
			t.Errorf("entry vs = %v, want singleton", entry.vs)
		}
	}
}

func TestSortEntriesKeepsUnsortableInPlace(t *testing.T) {
	entries := []sortEntry{
		{vs: []string{"a"}, i: 0, barycenter: layout.Float(2), weight: layout.Float(1)},
		{vs: []string{"b"}, i: 1, barycenter: layout.Float(6), weight: layout.Float(1)},
		{vs: []string{"c"}, i: 2},
		{vs: []string{"d"}, i: 3, barycenter: layout.Float(3), weight: layout.Float(1)},
	}

	got := sortEntries(entries, false)

	if want := []string{"a", "d", "c", "b"}; !slices.Equal(got.vs, want) {
		t.Errorf("sorted vs = %v, want %v", got.vs, want)
	}
	if bc := got.barycenter.Or(-1); bc != 11.0/3 {
		t.Errorf("barycenter = %v, want %v", bc, 11.0/3)
	}
	if w := got.weight.Or(-1); w != 3 {
		t.Errorf("weight = %v, want 3", w)
	}
}

func TestSortEntriesBias(t *testing.T) {
	entries := []sortEntry{
		{vs: []string{"a"}, i: 0, barycenter: layout.Float(1), weight: layout.Float(1)},
		{vs: []string{"b"}, i: 1, barycenter: layout.Float(1), weight: layout.Float(1)},
	}

	if got := sortEntries(entries, false); !slices.Equal(got.vs, []string{"a", "b"}) {
		t.Errorf("left bias vs = %v, want [a b]", got.vs)
	}
	if got := sortEntries(entries, true); !slices.Equal(got.vs, []string{"b", "a"}) {
		t.Errorf("right bias vs = %v, want [b a]", got.vs)
	}
}

func TestBuildLayerGraphAggregatesParallelEdges(t *testing.T) {
	g := newGraph()
	setRank(g, 0, "u")
	setRank(g, 1, "v", "w")
	g.SetNamedEdge("u", "v", "a", &layout.EdgeLabel{Weight: 2, MinLen: 1})
	g.SetNamedEdge("u", "v", "b", &layout.EdgeLabel{Weight: 3, MinLen: 1})
	g.SetEdge("u", "w", layout.NewEdgeLabel())

	lg := buildLayerGraph(g, 1, inEdges, nil)

	if !lg.HasNode("v") || !lg.HasNode("w") || !lg.HasNode("u") {
		t.Fatal("layer graph is missing rank-1 nodes or their neighbor")
	}
	if weight, ok := lg.Edge("u", "v", ""); !ok || weight != 5 {
		t.Errorf("aggregated u->v weight = %v, want 5", weight)
	}
	if weight, ok := lg.Edge("u", "w", ""); !ok || weight != 1 {
		t.Errorf("u->w weight = %v, want 1", weight)
	}
	root := lg.Label()
	if root == "" || !lg.HasNode(root) {
		t.Errorf("layer graph root %q not present", root)
	}
}

func TestBuildLayerGraphReducesClusterToRankBorders(t *testing.T) {
	g := layout.NewGraph(graph.Options{Directed: true, Compound: true})
	g.SetNode("sg", &layout.NodeLabel{
		MinRank:     layout.Int(0),
		MaxRank:     layout.Int(1),
		BorderLeft:  []string{"bl0", "bl1"},
		BorderRight: []string{"br0", "br1"},
	})
	setRank(g, 0, "a")
	g.SetParent("a", "sg")

	lg := buildLayerGraph(g, 0, outEdges, nil)

	if lg.Parent("a") != "sg" {
		t.Errorf("parent of a = %q, want sg", lg.Parent("a"))
	}
	if lg.Parent("sg") != lg.Label() {
		t.Errorf("parent of sg = %q, want root %q", lg.Parent("sg"), lg.Label())
	}
	sg, _ := lg.Node("sg")
	if got := sg.BorderLeftAt(0); got != "bl0" {
		t.Errorf("cluster border left = %q, want bl0", got)
	}
	if got := sg.BorderRightAt(0); got != "br0" {
		t.Errorf("cluster border right = %q, want br0", got)
	}
	if len(sg.BorderLeft) != 1 || len(sg.BorderRight) != 1 {
		t.Errorf("cluster borders reduced to %d/%d slots, want 1/1",
			len(sg.BorderLeft), len(sg.BorderRight))
	}
}

func TestSortSubgraphBracketsClusterWithBorders(t *testing.T) {
	lg := graph.New[*layout.NodeLabel, float64, string](graph.Options{
		Directed: true,
		Compound: true,
	})
	lg.SetLabel("_root")
	lg.SetNode("_root", &layout.NodeLabel{})
	lg.SetNode("sg", &layout.NodeLabel{
		BorderLeft:  []string{"bl"},
		BorderRight: []string{"br"},
	})
	lg.SetParent("sg", "_root")
	for _, v := range []string{"bl", "br", "a"} {
		lg.SetNode(v, &layout.NodeLabel{})
		lg.SetParent(v, "sg")
	}
	lg.SetNode("x", &layout.NodeLabel{})
	lg.SetParent("x", "_root")

	got := sortSubgraph(lg, "_root", newConflictGraph(), false)

	if want := []string{"bl", "a", "br", "x"}; !slices.Equal(got.vs, want) {
		t.Errorf("sorted vs = %v, want %v", got.vs, want)
	}
}

func TestAddSubgraphConstraintsLinksSiblingClusters(t *testing.T) {
	lg := graph.New[*layout.NodeLabel, float64, string](graph.Options{
		Directed: true,
		Compound: true,
	})
	lg.SetLabel("_root")
	for _, v := range []string{"_root", "sg1", "sg2", "a", "b"} {
		lg.SetNode(v, &layout.NodeLabel{})
	}
	lg.SetParent("sg1", "_root")
	lg.SetParent("sg2", "_root")
	lg.SetParent("a", "sg1")
	lg.SetParent("b", "sg2")

	cg := newConflictGraph()
	addSubgraphConstraints(lg, cg, []string{"a", "b"})

	if !cg.HasEdge("sg1", "sg2", "") {
		t.Error("expected constraint edge sg1->sg2")
	}
	if cg.EdgeCount() != 1 {
		t.Errorf("constraint edges = %d, want 1", cg.EdgeCount())
	}
}

func TestTwoLayerCrossCountWeighted(t *testing.T) {
	g := newGraph()
	setRank(g, 0, "a", "b")
	setRank(g, 1, "c", "d")
	g.SetEdge("a", "d", &layout.EdgeLabel{Weight: 2, MinLen: 1})
	g.SetEdge("b", "c", &layout.EdgeLabel{Weight: 3, MinLen: 1})

	layering := [][]string{{"a", "b"}, {"c", "d"}}
	if cc := crossCount(g, layering); cc != 6 {
		t.Errorf("crossCount = %v, want 6", cc)
	}
}

func TestRunReducesCrossings(t *testing.T) {
	build := func() *layout.Graph {
		g := newGraph()
		setRank(g, 0, "a", "b", "c")
		setRank(g, 1, "d", "e", "f")
		g.SetEdge("a", "e", layout.NewEdgeLabel())
		g.SetEdge("b", "d", layout.NewEdgeLabel())
		g.SetEdge("b", "f", layout.NewEdgeLabel())
		g.SetEdge("c", "e", layout.NewEdgeLabel())
		return g
	}

	init := build()
	layering := initOrder(init)
	assignOrder(init, layering)
	initial := crossCount(init, layerMatrix(init, 1))

	g := build()
	Run(g)
	final := crossCount(g, layerMatrix(g, 1))

	if final > initial {
		t.Errorf("crossings after ordering = %v, initial placement had %v", final, initial)
	}
	if final != 0 {
		t.Errorf("crossings = %v, want 0 for this graph", final)
	}

	// Every rank must end up with a dense, distinct order sequence.
	for rank, layer := range layerMatrix(g, 1) {
		seen := make(map[int]bool)
		for _, v := range layer {
			node, _ := g.Node(v)
			order, ok := node.Order.Get()
			if !ok || order < 0 || order >= len(layer) || seen[order] {
				t.Fatalf("rank %d has non-dense orders: %v", rank, layer)
			}
			seen[order] = true
		}
	}
}

func TestRunIsStableUnderReordering(t *testing.T) {
	g := newGraph()
	setRank(g, 0, "a", "b", "c")
	setRank(g, 1, "d", "e", "f")
	g.SetEdge("a", "e", layout.NewEdgeLabel())
	g.SetEdge("b", "d", layout.NewEdgeLabel())
	g.SetEdge("b", "f", layout.NewEdgeLabel())
	g.SetEdge("c", "e", layout.NewEdgeLabel())

	Run(g)
	first := crossCount(g, layerMatrix(g, 1))
	Run(g)
	second := crossCount(g, layerMatrix(g, 1))

	if second > first {
		t.Errorf("re-running ordering raised crossings from %v to %v", first, second)
	}
}

func TestRunKeepsInitialOrderWhenHeuristicDisabled(t *testing.T) {
	g := newGraph()
	g.Label().DisableOptimalOrderHeuristic = true
	setRank(g, 0, "a", "b", "c")
	setRank(g, 1, "d", "e", "f")
	g.SetEdge("a", "e", layout.NewEdgeLabel())
	g.SetEdge("b", "d", layout.NewEdgeLabel())
	g.SetEdge("b", "f", layout.NewEdgeLabel())
	g.SetEdge("c", "e", layout.NewEdgeLabel())

	Run(g)

	want := map[string]int{"a": 0, "b": 1, "c": 2, "e": 0, "d": 1, "f": 2}
	for v, order := range want {
		node, _ := g.Node(v)
		if got := node.Order.Or(-1); got != order {
			t.Errorf("order of %s = %d, want %d", v, got, order)
		}
	}
}
