package acyclic

import (
	"slices"
	"testing"

	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

func newGraph() *layout.Graph {
	return layout.NewGraph(graph.Options{Directed: true, Multigraph: true})
}

func setNode(g *layout.Graph, v string) {
	g.SetNode(v, &layout.NodeLabel{})
}

func setEdge(g *layout.Graph, v, w string, weight float64) {
	setNode(g, v)
	setNode(g, w)
	lbl := layout.NewEdgeLabel()
	lbl.Weight = weight
	g.SetEdge(v, w, lbl)
}

func weightOf(g *layout.Graph) func(graph.EdgeKey) float64 {
	return func(ek graph.EdgeKey) float64 {
		lbl, _ := g.EdgeLabel(ek)
		return lbl.EdgeWeight()
	}
}

func TestRunLeavesGraphAcyclic(t *testing.T) {
	for _, acyclicer := range []string{"", layout.AcyclicerGreedy} {
		g := newGraph()
		g.Label().Acyclicer = acyclicer
		setEdge(g, "a", "b", 1)
		setEdge(g, "b", "c", 1)
		setEdge(g, "c", "a", 1)
		setEdge(g, "c", "d", 1)
		setEdge(g, "d", "b", 1)

		Run(g)

		if !graph.IsAcyclic(g) {
			t.Errorf("acyclicer %q: graph still has a cycle after Run", acyclicer)
		}
	}
}

func TestRunUndoRoundTrip(t *testing.T) {
	g := newGraph()
	setEdge(g, "a", "b", 1)
	setEdge(g, "b", "a", 1)

	Run(g)
	Undo(g)

	for _, want := range []graph.EdgeKey{{V: "a", W: "b"}, {V: "b", W: "a"}} {
		lbl, ok := g.EdgeLabel(want)
		if !ok {
			t.Fatalf("edge %v missing after undo", want)
		}
		if lbl.Reversed || lbl.ForwardName != "" {
			t.Errorf("edge %v kept reversal state: %+v", want, lbl)
		}
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2", g.EdgeCount())
	}
}

func TestRunKeepsAntiparallelEdges(t *testing.T) {
	// Layout graphs are always multigraph, so reversing one side of a
	// two-cycle must not overwrite the edge already running that way.
	g := layout.NewGraph(graph.Options{})
	setEdge(g, "a", "b", 1)
	setEdge(g, "b", "a", 1)

	Run(g)
	if g.EdgeCount() != 2 {
		t.Fatalf("edge count after Run = %d, want 2", g.EdgeCount())
	}

	Undo(g)
	for _, want := range []graph.EdgeKey{{V: "a", W: "b"}, {V: "b", W: "a"}} {
		if _, ok := g.EdgeLabel(want); !ok {
			t.Errorf("edge %v missing after undo", want)
		}
	}
}

func TestRunReversesPreservingLabel(t *testing.T) {
	g := newGraph()
	setEdge(g, "a", "b", 1)
	lbl := layout.NewEdgeLabel()
	lbl.Weight = 3
	g.SetNamedEdge("b", "a", "back", lbl)

	Run(g)

	rev, ok := g.Edge("a", "b", "rev1")
	if !ok {
		t.Fatalf("expected reversed edge (a, b, rev1), have %v", g.EdgeKeys())
	}
	if !rev.Reversed || rev.ForwardName != "back" || rev.Weight != 3 {
		t.Errorf("reversed label = %+v, want reversed with forward name %q and weight 3", rev, "back")
	}
}

func TestGreedyFASEmptyAndSingleton(t *testing.T) {
	g := newGraph()
	if fas := GreedyFAS(g, weightOf(g)); len(fas) != 0 {
		t.Errorf("empty graph: fas = %v, want none", fas)
	}
	setNode(g, "a")
	if fas := GreedyFAS(g, weightOf(g)); len(fas) != 0 {
		t.Errorf("singleton: fas = %v, want none", fas)
	}
}

func TestGreedyFASBreaksAllCycles(t *testing.T) {
	cases := []struct {
		name  string
		edges [][2]string
	}{
		{"two-cycle", [][2]string{{"a", "b"}, {"b", "a"}}},
		{"four-cycle", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}}},
		{"chained cycles", [][2]string{
			{"a", "b"}, {"b", "a"},
			{"b", "c"}, {"c", "b"},
			{"c", "d"}, {"d", "c"},
		}},
	}
	for _, tc := range cases {
		g := newGraph()
		for _, e := range tc.edges {
			setEdge(g, e[0], e[1], 1)
		}

		fas := GreedyFAS(g, weightOf(g))

		bound := g.EdgeCount()/2 - g.NodeCount()/6
		if len(fas) > bound {
			t.Errorf("%s: fas size %d exceeds bound %d", tc.name, len(fas), bound)
		}
		for _, ek := range fas {
			g.RemoveEdgeKey(ek)
		}
		if !graph.IsAcyclic(g) {
			t.Errorf("%s: cycle remains after removing %v", tc.name, fas)
		}
	}
}

func TestGreedyFASPrefersLighterEdge(t *testing.T) {
	g := newGraph()
	setEdge(g, "n1", "n2", 2)
	setEdge(g, "n2", "n1", 1)

	fas := GreedyFAS(g, weightOf(g))
	want := []graph.EdgeKey{{V: "n2", W: "n1"}}
	if !slices.Equal(fas, want) {
		t.Errorf("fas = %v, want %v", fas, want)
	}

	// Flipping the weights must flip the selection.
	g = newGraph()
	setEdge(g, "n1", "n2", 1)
	setEdge(g, "n2", "n1", 2)

	fas = GreedyFAS(g, weightOf(g))
	want = []graph.EdgeKey{{V: "n1", W: "n2"}}
	if !slices.Equal(fas, want) {
		t.Errorf("fas = %v, want %v", fas, want)
	}
}

func TestGreedyFASExpandsMultiEdges(t *testing.T) {
	g := newGraph()
	setEdge(g, "a", "b", 1)
	setEdge(g, "b", "a", 5)
	extra := layout.NewEdgeLabel()
	g.SetNamedEdge("a", "b", "dup", extra)

	fas := GreedyFAS(g, weightOf(g))
	want := []graph.EdgeKey{{V: "a", W: "b"}, {V: "a", W: "b", Name: "dup"}}
	if !slices.Equal(fas, want) {
		t.Errorf("fas = %v, want both parallel a->b edges", fas)
	}
}
