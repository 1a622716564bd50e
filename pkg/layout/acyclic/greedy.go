package acyclic

import (
	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

// GreedyFAS finds a feedback arc set using the heuristic of Eades, Lin and
// Smyth. The returned set, when reversed, makes the graph acyclic, and its
// size is at most |E|/2 - |V|/6. Parallel edges are aggregated while the
// heuristic runs and expanded again in the result.
func GreedyFAS(g *layout.Graph, weightFn func(graph.EdgeKey) float64) []graph.EdgeKey {
	if g.NodeCount() <= 1 {
		return nil
	}
	st := buildFASState(g, weightFn)
	pairs := st.run()

	var fas []graph.EdgeKey
	for _, p := range pairs {
		fas = append(fas, g.OutEdgesTo(p.v, p.w)...)
	}
	return fas
}

type fasEntry struct {
	v      string
	in     float64
	out    float64
	bucket int
}

type fasPair struct {
	v, w string
}

type fasState struct {
	g       *graph.Graph[*fasEntry, float64, struct{}]
	buckets [][]*fasEntry
	zeroIdx int
}

func buildFASState(g *layout.Graph, weightFn func(graph.EdgeKey) float64) *fasState {
	fg := graph.New[*fasEntry, float64, struct{}](graph.Options{Directed: true})
	for _, v := range g.NodeIDs() {
		fg.SetNode(v, &fasEntry{v: v, bucket: -1})
	}

	var maxIn, maxOut float64
	for _, ek := range g.EdgeKeys() {
		prev, _ := fg.Edge(ek.V, ek.W, "")
		weight := weightFn(ek)
		fg.SetEdge(ek.V, ek.W, prev+weight)

		vEntry, _ := fg.Node(ek.V)
		vEntry.out += weight
		maxOut = max(maxOut, vEntry.out)

		wEntry, _ := fg.Node(ek.W)
		wEntry.in += weight
		maxIn = max(maxIn, wEntry.in)
	}

	st := &fasState{
		g:       fg,
		buckets: make([][]*fasEntry, int(maxOut+maxIn)+3),
		zeroIdx: int(maxIn) + 1,
	}
	for _, v := range fg.NodeIDs() {
		entry, _ := fg.Node(v)
		st.assign(entry)
	}
	return st
}

// run repeatedly strips sinks and sources, then removes the node with the
// largest out-in difference, collecting its remaining in-edges as feedback.
func (st *fasState) run() []fasPair {
	var results []fasPair
	sinks := 0
	sources := len(st.buckets) - 1

	for st.g.NodeCount() > 0 {
		for entry := st.pop(sinks); entry != nil; entry = st.pop(sinks) {
			st.removeNode(entry, false)
		}
		for entry := st.pop(sources); entry != nil; entry = st.pop(sources) {
			st.removeNode(entry, false)
		}
		if st.g.NodeCount() == 0 {
			break
		}
		for i := len(st.buckets) - 2; i > 0; i-- {
			if entry := st.pop(i); entry != nil {
				results = append(results, st.removeNode(entry, true)...)
				break
			}
		}
	}
	return results
}

func (st *fasState) removeNode(entry *fasEntry, collect bool) []fasPair {
	var collected []fasPair
	v := entry.v
	for _, ek := range st.g.InEdges(v) {
		weight, _ := st.g.Edge(ek.V, ek.W, "")
		if collect {
			collected = append(collected, fasPair{ek.V, ek.W})
		}
		uEntry, _ := st.g.Node(ek.V)
		uEntry.out -= weight
		st.assign(uEntry)
	}
	for _, ek := range st.g.OutEdges(v) {
		weight, _ := st.g.Edge(ek.V, ek.W, "")
		wEntry, _ := st.g.Node(ek.W)
		wEntry.in -= weight
		st.assign(wEntry)
	}
	st.g.RemoveNode(v)
	return collected
}

// assign moves the entry to the bucket matching its current degrees. Sinks
// land in the first bucket, sources in the last, everything else at an offset
// proportional to out minus in.
func (st *fasState) assign(entry *fasEntry) {
	if entry.bucket >= 0 {
		bucket := st.buckets[entry.bucket]
		if idx := indexOfEntry(bucket, entry); idx >= 0 {
			st.buckets[entry.bucket] = append(bucket[:idx], bucket[idx+1:]...)
		}
	}
	var idx int
	switch {
	case entry.out == 0:
		idx = 0
	case entry.in == 0:
		idx = len(st.buckets) - 1
	default:
		idx = int(entry.out-entry.in) + st.zeroIdx
	}
	st.buckets[idx] = append(st.buckets[idx], entry)
	entry.bucket = idx
}

// pop takes the oldest entry in the bucket, skipping entries whose node has
// already left the graph.
func (st *fasState) pop(i int) *fasEntry {
	for len(st.buckets[i]) > 0 {
		entry := st.buckets[i][0]
		st.buckets[i] = st.buckets[i][1:]
		entry.bucket = -1
		if st.g.HasNode(entry.v) {
			return entry
		}
	}
	return nil
}

func indexOfEntry(bucket []*fasEntry, entry *fasEntry) int {
	for i, e := range bucket {
		if e == entry {
			return i
		}
	}
	return -1
}
