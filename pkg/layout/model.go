package layout

import "github.com/laminagraph/lamina/pkg/graph"

// Graph is the concrete graph type the layout pipeline operates on.
type Graph = graph.Graph[*NodeLabel, *EdgeLabel, *GraphLabel]

// NewGraph creates an empty layout graph. Compound behavior follows opts;
// layout graphs are always directed and multigraph, so feedback-edge reversal
// can never collide with an antiparallel edge between the same pair.
func NewGraph(opts graph.Options) *Graph {
	opts.Directed = true
	opts.Multigraph = true
	g := graph.New[*NodeLabel, *EdgeLabel, *GraphLabel](opts)
	g.SetLabel(NewGraphLabel())
	return g
}

// OptInt is an optional integer. Ranks may legitimately be negative before
// normalization, so a sentinel value cannot stand in for "unset"; the zero
// OptInt is unset.
type OptInt struct {
	v  int
	ok bool
}

// Int returns a set OptInt.
func Int(v int) OptInt { return OptInt{v: v, ok: true} }

// Present reports whether the value is set.
func (o OptInt) Present() bool { return o.ok }

// Get returns the value and whether it is set.
func (o OptInt) Get() (int, bool) { return o.v, o.ok }

// Or returns the value, or def when unset.
func (o OptInt) Or(def int) int {
	if o.ok {
		return o.v
	}
	return def
}

// OptFloat is an optional float64; the zero OptFloat is unset.
type OptFloat struct {
	v  float64
	ok bool
}

// Float returns a set OptFloat.
func Float(v float64) OptFloat { return OptFloat{v: v, ok: true} }

// Present reports whether the value is set.
func (o OptFloat) Present() bool { return o.ok }

// Get returns the value and whether it is set.
func (o OptFloat) Get() (float64, bool) { return o.v, o.ok }

// Or returns the value, or def when unset.
func (o OptFloat) Or(def float64) float64 {
	if o.ok {
		return o.v
	}
	return def
}

// Dummy tags synthetic nodes created during layout.
type Dummy string

const (
	DummyNone      Dummy = ""
	DummyEdge      Dummy = "edge"       // long-edge chain segment
	DummyEdgeLabel Dummy = "edge-label" // chain segment carrying the edge's label box
	DummyEdgeProxy Dummy = "edge-proxy" // transient label-rank probe
	DummyBorder    Dummy = "border"     // cluster border segment
	DummyRoot      Dummy = "root"       // nesting-graph root
	DummySelfEdge  Dummy = "selfedge"   // re-inserted self-loop
)

// BorderType distinguishes the two sides of a cluster's border chain.
type BorderType string

const (
	BorderLeft  BorderType = "borderLeft"
	BorderRight BorderType = "borderRight"
)

// LabelPos positions an edge label relative to its edge.
type LabelPos string

const (
	LabelPosCenter LabelPos = "c"
	LabelPosLeft   LabelPos = "l"
	LabelPosRight  LabelPos = "r"
)

// RankDir is the primary layout direction.
type RankDir string

const (
	RankDirTB RankDir = "tb"
	RankDirBT RankDir = "bt"
	RankDirLR RankDir = "lr"
	RankDirRL RankDir = "rl"
)

// IsHorizontal reports whether ranks advance along the x axis.
func (d RankDir) IsHorizontal() bool { return d == RankDirLR || d == RankDirRL }

// Point is a 2-D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle identified by its center.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// SelfEdge stashes a removed self-loop on its node until ordering is done.
type SelfEdge struct {
	Key   graph.EdgeKey
	Label *EdgeLabel
}

// NodeLabel carries everything the pipeline knows about one node.
type NodeLabel struct {
	Width, Height float64
	X, Y          OptFloat

	Rank  OptInt
	Order OptInt

	// Dummy is set on synthetic nodes only.
	Dummy    Dummy
	LabelPos LabelPos

	// EdgeLabel/EdgeKey link an edge dummy back to its origin edge.
	EdgeLabel *EdgeLabel
	EdgeKey   *graph.EdgeKey

	// Cluster-only fields: the inclusive rank span of all descendants and
	// the synthetic border node ids.
	MinRank, MaxRank OptInt
	BorderType       BorderType
	BorderLeft       []string // one slot per rank, "" when absent
	BorderRight      []string
	BorderTop        string
	BorderBottom     string

	SelfEdges []SelfEdge
}

// BorderLeftAt returns the cluster's left border node at rank, or "".
func (n *NodeLabel) BorderLeftAt(rank int) string { return at(n.BorderLeft, rank) }

// BorderRightAt returns the cluster's right border node at rank, or "".
func (n *NodeLabel) BorderRightAt(rank int) string { return at(n.BorderRight, rank) }

func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

// EdgeLabel carries everything the pipeline knows about one edge.
type EdgeLabel struct {
	// Weight biases ranking and ordering toward keeping the edge short and
	// straight. MinLen is the minimum rank span; values below 1 are treated
	// as 1.
	Weight float64
	MinLen int

	// Label box for edges carrying text.
	Width, Height float64
	LabelPos      LabelPos
	LabelOffset   float64
	LabelRank     OptInt

	// NestingEdge marks synthetic nesting-graph edges for cleanup.
	NestingEdge bool

	// Reversed/ForwardName record feedback edges flipped during acyclic
	// enforcement so they can be restored after layout.
	Reversed    bool
	ForwardName string

	// Resolved geometry, filled in once dummy chains collapse.
	X, Y   OptFloat
	Points []Point
}

// NewEdgeLabel returns an edge label with the conventional defaults
// (weight 1, minlen 1, centered label).
func NewEdgeLabel() *EdgeLabel {
	return &EdgeLabel{Weight: 1, MinLen: 1, LabelPos: LabelPosCenter}
}

// MinLength returns MinLen clamped to at least 1.
func (e *EdgeLabel) MinLength() int {
	if e == nil || e.MinLen < 1 {
		return 1
	}
	return e.MinLen
}

// EdgeWeight returns the edge's weight; it implements the ordering stage's
// weighted-edge capability.
func (e *EdgeLabel) EdgeWeight() float64 {
	if e == nil {
		return 0
	}
	return e.Weight
}

// Ranker strategy names accepted by GraphLabel.Ranker.
const (
	RankerNetworkSimplex = "network-simplex"
	RankerTightTree      = "tight-tree"
	RankerLongestPath    = "longest-path"
	RankerNone           = "none"
)

// AcyclicerGreedy selects the greedy feedback-arc-set heuristic; any other
// value selects the DFS variant.
const AcyclicerGreedy = "greedy"

// GraphLabel carries graph-wide configuration and transient pipeline state.
type GraphLabel struct {
	RankDir RankDir

	NodeSep float64
	RankSep float64
	EdgeSep float64
	MarginX float64
	MarginY float64

	Ranker    string
	Acyclicer string

	// DisableOptimalOrderHeuristic keeps the initial depth-first order
	// instead of running crossing-minimization sweeps.
	DisableOptimalOrderHeuristic bool

	// DummyChains records the first dummy of every normalized long edge.
	DummyChains []string
	// NestingRoot is the synthetic root inserted by the nesting graph.
	NestingRoot string
	// NodeRankFactor is the rank-scale factor the nesting graph applied.
	NodeRankFactor int
}

// NewGraphLabel returns a graph label with the conventional spacing defaults.
func NewGraphLabel() *GraphLabel {
	return &GraphLabel{
		RankDir: RankDirTB,
		NodeSep: 50,
		RankSep: 50,
		EdgeSep: 20,
	}
}
