package compound

import (
	"testing"

	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

func newCompound() *layout.Graph {
	return layout.NewGraph(graph.Options{Directed: true, Multigraph: true, Compound: true})
}

func TestParentDummyChainsNestedClusters(t *testing.T) {
	g := newCompound()
	g.SetNode("sg1", &layout.NodeLabel{MinRank: layout.Int(0), MaxRank: layout.Int(6)})
	g.SetNode("sg2", &layout.NodeLabel{MinRank: layout.Int(3), MaxRank: layout.Int(5)})
	g.SetNode("a", &layout.NodeLabel{Rank: layout.Int(1)})
	g.SetNode("b", &layout.NodeLabel{Rank: layout.Int(5)})
	g.SetParent("sg2", "sg1")
	g.SetParent("a", "sg1")
	g.SetParent("b", "sg2")

	// Dummy chain for a -> b crossing ranks 2..4.
	key := graph.EdgeKey{V: "a", W: "b"}
	g.SetNode("d2", &layout.NodeLabel{Rank: layout.Int(2), Dummy: layout.DummyEdge, EdgeKey: &key})
	g.SetNode("d3", &layout.NodeLabel{Rank: layout.Int(3), Dummy: layout.DummyEdge, EdgeKey: &key})
	g.SetNode("d4", &layout.NodeLabel{Rank: layout.Int(4), Dummy: layout.DummyEdge, EdgeKey: &key})
	g.SetEdge("a", "d2", layout.NewEdgeLabel())
	g.SetEdge("d2", "d3", layout.NewEdgeLabel())
	g.SetEdge("d3", "d4", layout.NewEdgeLabel())
	g.SetEdge("d4", "b", layout.NewEdgeLabel())
	g.Label().DummyChains = []string{"d2"}

	ParentDummyChains(g)

	want := map[string]string{"d2": "sg1", "d3": "sg2", "d4": "sg2"}
	for v, parent := range want {
		if got := g.Parent(v); got != parent {
			t.Errorf("parent(%s) = %q, want %q", v, got, parent)
		}
	}
}

func TestParentDummyChainsClearsAboveRoot(t *testing.T) {
	g := newCompound()
	g.SetNode("sg", &layout.NodeLabel{MinRank: layout.Int(2), MaxRank: layout.Int(3)})
	g.SetNode("a", &layout.NodeLabel{Rank: layout.Int(0)})
	g.SetNode("b", &layout.NodeLabel{Rank: layout.Int(3)})
	g.SetParent("b", "sg")

	key := graph.EdgeKey{V: "a", W: "b"}
	g.SetNode("d1", &layout.NodeLabel{Rank: layout.Int(1), Dummy: layout.DummyEdge, EdgeKey: &key})
	g.SetNode("d2", &layout.NodeLabel{Rank: layout.Int(2), Dummy: layout.DummyEdge, EdgeKey: &key})
	g.SetEdge("a", "d1", layout.NewEdgeLabel())
	g.SetEdge("d1", "d2", layout.NewEdgeLabel())
	g.SetEdge("d2", "b", layout.NewEdgeLabel())
	g.Label().DummyChains = []string{"d1"}

	ParentDummyChains(g)

	if got := g.Parent("d1"); got != "" {
		t.Errorf("parent(d1) = %q, want top level", got)
	}
	if got := g.Parent("d2"); got != "sg" {
		t.Errorf("parent(d2) = %q, want sg", got)
	}
}

func TestAddBorderSegmentsCreatesPerRankBorders(t *testing.T) {
	g := newCompound()
	g.SetNode("sg", &layout.NodeLabel{MinRank: layout.Int(1), MaxRank: layout.Int(2)})
	g.SetNode("a", &layout.NodeLabel{Rank: layout.Int(1)})
	g.SetParent("a", "sg")

	AddBorderSegments(g)

	sg, _ := g.Node("sg")
	for rank := 1; rank <= 2; rank++ {
		left := sg.BorderLeftAt(rank)
		right := sg.BorderRightAt(rank)
		if left == "" || right == "" {
			t.Fatalf("rank %d: missing border ids (left %q, right %q)", rank, left, right)
		}
		for _, id := range []string{left, right} {
			node, ok := g.Node(id)
			if !ok {
				t.Fatalf("border node %q missing", id)
			}
			if node.Dummy != layout.DummyBorder || node.Rank.Or(-1) != rank {
				t.Errorf("border %q = %+v, want border dummy at rank %d", id, node, rank)
			}
			if g.Parent(id) != "sg" {
				t.Errorf("border %q parent = %q, want sg", id, g.Parent(id))
			}
		}
	}
	if !g.HasEdge(sg.BorderLeftAt(1), sg.BorderLeftAt(2), "") {
		t.Error("left border chain not connected across ranks")
	}
	if !g.HasEdge(sg.BorderRightAt(1), sg.BorderRightAt(2), "") {
		t.Error("right border chain not connected across ranks")
	}
}

func TestAddBorderSegmentsNoopWithoutClusters(t *testing.T) {
	g := newCompound()
	g.SetNode("a", &layout.NodeLabel{Rank: layout.Int(0)})
	g.SetNode("b", &layout.NodeLabel{Rank: layout.Int(1)})
	g.SetEdge("a", "b", layout.NewEdgeLabel())

	AddBorderSegments(g)

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("graph changed: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestAssignRankSpansReadsBorderRanks(t *testing.T) {
	g := newCompound()
	g.SetNode("sg", &layout.NodeLabel{BorderTop: "_bt", BorderBottom: "_bb"})
	g.SetNode("_bt", &layout.NodeLabel{Rank: layout.Int(1)})
	g.SetNode("_bb", &layout.NodeLabel{Rank: layout.Int(4)})

	AssignRankSpans(g)

	sg, _ := g.Node("sg")
	if sg.MinRank.Or(-1) != 1 || sg.MaxRank.Or(-1) != 4 {
		t.Errorf("rank span = [%v, %v], want [1, 4]", sg.MinRank.Or(-1), sg.MaxRank.Or(-1))
	}
}

func TestRemoveBorderNodesSetsClusterGeometry(t *testing.T) {
	g := newCompound()
	g.SetNode("sg", &layout.NodeLabel{
		BorderTop:    "_bt",
		BorderBottom: "_bb",
		BorderLeft:   []string{"", "_bl1", "_bl2"},
		BorderRight:  []string{"", "_br1", "_br2"},
	})
	g.SetNode("a", &layout.NodeLabel{X: layout.Float(50), Y: layout.Float(50)})
	g.SetParent("a", "sg")
	g.SetNode("_bt", &layout.NodeLabel{Dummy: layout.DummyBorder, Y: layout.Float(10)})
	g.SetNode("_bb", &layout.NodeLabel{Dummy: layout.DummyBorder, Y: layout.Float(90)})
	g.SetNode("_bl1", &layout.NodeLabel{Dummy: layout.DummyBorder, X: layout.Float(20)})
	g.SetNode("_bl2", &layout.NodeLabel{Dummy: layout.DummyBorder, X: layout.Float(24)})
	g.SetNode("_br1", &layout.NodeLabel{Dummy: layout.DummyBorder, X: layout.Float(80)})
	g.SetNode("_br2", &layout.NodeLabel{Dummy: layout.DummyBorder, X: layout.Float(76)})

	RemoveBorderNodes(g)

	sg, _ := g.Node("sg")
	if sg.Width != 60 || sg.Height != 80 {
		t.Errorf("cluster size = %vx%v, want 60x80", sg.Width, sg.Height)
	}
	if x, _ := sg.X.Get(); x != 50 {
		t.Errorf("cluster x = %v, want 50", x)
	}
	if y, _ := sg.Y.Get(); y != 50 {
		t.Errorf("cluster y = %v, want 50", y)
	}
	for _, id := range []string{"_bt", "_bb", "_bl1", "_bl2", "_br1", "_br2"} {
		if g.HasNode(id) {
			t.Errorf("border node %q survived removal", id)
		}
	}
}
