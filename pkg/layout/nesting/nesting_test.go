package nesting

import (
	"testing"

	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

func newGraph() *layout.Graph {
	return layout.NewGraph(graph.Options{Directed: true, Compound: true})
}

func setNode(g *layout.Graph, v string) {
	g.SetNode(v, &layout.NodeLabel{})
}

func TestRunConnectsDisconnectedGraph(t *testing.T) {
	g := newGraph()
	setNode(g, "a")
	setNode(g, "b")

	Run(g)

	root := g.Label().NestingRoot
	if root == "" {
		t.Fatal("nesting root not recorded")
	}
	if comps := graph.Components(g); len(comps) != 1 {
		t.Errorf("graph has %d components after Run, want 1", len(comps))
	}
	for _, v := range []string{"a", "b"} {
		if !g.HasEdge(root, v, "") {
			t.Errorf("missing root edge to %q", v)
		}
	}
}

func TestRunAddsBorderNodesToSubgraph(t *testing.T) {
	g := newGraph()
	setNode(g, "sg")
	setNode(g, "a")
	g.SetParent("a", "sg")

	Run(g)

	sg, _ := g.Node("sg")
	if sg.BorderTop == "" || sg.BorderBottom == "" {
		t.Fatalf("cluster border ids not set: %+v", sg)
	}
	for _, border := range []string{sg.BorderTop, sg.BorderBottom} {
		node, ok := g.Node(border)
		if !ok {
			t.Fatalf("border node %q missing", border)
		}
		if node.Dummy != layout.DummyBorder {
			t.Errorf("border node %q dummy = %q, want %q", border, node.Dummy, layout.DummyBorder)
		}
		if g.Parent(border) != "sg" {
			t.Errorf("border node %q parent = %q, want sg", border, g.Parent(border))
		}
	}
	if !g.HasEdge(sg.BorderTop, "a", "") || !g.HasEdge("a", sg.BorderBottom, "") {
		t.Error("child not linked between cluster borders")
	}
}

func TestRunScalesMinlenByRankFactor(t *testing.T) {
	g := newGraph()
	setNode(g, "sg1")
	setNode(g, "sg2")
	setNode(g, "a")
	setNode(g, "b")
	g.SetParent("a", "sg1")
	g.SetParent("sg2", "sg1")
	g.SetParent("b", "sg2")
	g.SetEdge("a", "b", layout.NewEdgeLabel())

	Run(g)

	// Two cluster levels: height 2, so every real edge stretches by 5.
	if factor := g.Label().NodeRankFactor; factor != 5 {
		t.Fatalf("node rank factor = %d, want 5", factor)
	}
	lbl, _ := g.Edge("a", "b", "")
	if lbl.MinLen != 5 {
		t.Errorf("edge minlen = %d, want 5", lbl.MinLen)
	}
}

func TestCleanupRemovesNestingStructure(t *testing.T) {
	g := newGraph()
	setNode(g, "sg")
	setNode(g, "a")
	setNode(g, "b")
	g.SetParent("a", "sg")
	g.SetParent("b", "sg")
	g.SetEdge("a", "b", layout.NewEdgeLabel())

	Run(g)
	Cleanup(g)

	if root := g.Label().NestingRoot; root != "" {
		t.Errorf("nesting root %q survived cleanup", root)
	}
	for _, ek := range g.EdgeKeys() {
		lbl, _ := g.EdgeLabel(ek)
		if lbl.NestingEdge {
			t.Errorf("nesting edge %v survived cleanup", ek)
		}
		if lbl.Weight == 0 {
			t.Errorf("root edge %v survived cleanup", ek)
		}
	}
	if !g.HasEdge("a", "b", "") {
		t.Error("real edge removed by cleanup")
	}
}
