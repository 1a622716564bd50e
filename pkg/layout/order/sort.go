package order

import (
	"cmp"
	"slices"

	"github.com/laminagraph/lamina/pkg/layout"
)

// barycenterEntry pairs a movable node with the weighted mean order of its
// predecessors in the adjacent layer. A node with no in-edges has no
// barycenter and keeps its current position during the sort.
type barycenterEntry struct {
	v          string
	barycenter layout.OptFloat
	weight     layout.OptFloat
}

func barycenters(lg *layerGraph, movable []string) []barycenterEntry {
	out := make([]barycenterEntry, 0, len(movable))
	for _, v := range movable {
		in := lg.InEdges(v)
		if len(in) == 0 {
			out = append(out, barycenterEntry{v: v})
			continue
		}
		var sum, weight float64
		for _, ek := range in {
			w, _ := lg.EdgeLabel(ek)
			uNode, _ := lg.Node(ek.V)
			sum += w * float64(uNode.Order.Or(0))
			weight += w
		}
		out = append(out, barycenterEntry{
			v:          v,
			barycenter: layout.Float(sum / weight),
			weight:     layout.Float(weight),
		})
	}
	return out
}

// sortEntry is a (possibly merged) group of nodes that moves together, with
// i recording the group's earliest original position.
type sortEntry struct {
	vs         []string
	i          int
	barycenter layout.OptFloat
	weight     layout.OptFloat
}

type conflictEntry struct {
	indegree   int
	ins        []string
	outs       []string
	vs         []string
	i          int
	barycenter layout.OptFloat
	weight     layout.OptFloat
	merged     bool
}

// resolveConflicts processes entries in topological order of the constraint
// graph. Whenever a constrained predecessor would sort at or after its
// successor (or either side has no barycenter) the pair is merged into a
// single entry with a combined weighted barycenter, so the sort can never
// violate a constraint.
func resolveConflicts(entries []barycenterEntry, cg *conflictGraph) []sortEntry {
	mapped := make(map[string]*conflictEntry, len(entries))
	keys := make([]string, 0, len(entries))
	for i, entry := range entries {
		mapped[entry.v] = &conflictEntry{
			vs:         []string{entry.v},
			i:          i,
			barycenter: entry.barycenter,
			weight:     entry.weight,
		}
		keys = append(keys, entry.v)
	}

	for _, ek := range cg.EdgeKeys() {
		vEntry, okV := mapped[ek.V]
		wEntry, okW := mapped[ek.W]
		if !okV || !okW {
			continue
		}
		wEntry.indegree++
		vEntry.outs = append(vEntry.outs, ek.W)
	}

	var sourceSet []string
	for _, v := range keys {
		if mapped[v].indegree == 0 {
			sourceSet = append(sourceSet, v)
		}
	}

	var processed []string
	for len(sourceSet) > 0 {
		v := sourceSet[len(sourceSet)-1]
		sourceSet = sourceSet[:len(sourceSet)-1]
		processed = append(processed, v)
		entry := mapped[v]

		for j := len(entry.ins) - 1; j >= 0; j-- {
			uEntry := mapped[entry.ins[j]]
			if uEntry.merged {
				continue
			}
			if !uEntry.barycenter.Present() || !entry.barycenter.Present() ||
				uEntry.barycenter.Or(0) >= entry.barycenter.Or(0) {
				mergeConflictEntries(entry, uEntry)
			}
		}

		for _, w := range entry.outs {
			wEntry := mapped[w]
			wEntry.ins = append(wEntry.ins, v)
			wEntry.indegree--
			if wEntry.indegree == 0 {
				sourceSet = append(sourceSet, w)
			}
		}
	}

	out := make([]sortEntry, 0, len(processed))
	for _, v := range processed {
		entry := mapped[v]
		if entry.merged {
			continue
		}
		out = append(out, sortEntry{
			vs:         entry.vs,
			i:          entry.i,
			barycenter: entry.barycenter,
			weight:     entry.weight,
		})
	}
	return out
}

// mergeConflictEntries folds source into target: source's nodes go in front,
// the barycenters combine weighted (zero-weight sides are skipped), and the
// earlier original position wins.
func mergeConflictEntries(target, source *conflictEntry) {
	var sum, weight float64
	if b, ok := target.barycenter.Get(); ok {
		if w := target.weight.Or(0); w != 0 {
			sum += b * w
			weight += w
		}
	}
	if b, ok := source.barycenter.Get(); ok {
		if w := source.weight.Or(0); w != 0 {
			sum += b * w
			weight += w
		}
	}

	target.vs = append(slices.Clone(source.vs), target.vs...)
	if weight != 0 {
		target.barycenter = layout.Float(sum / weight)
		target.weight = layout.Float(weight)
	}
	target.i = min(target.i, source.i)
	source.merged = true
}

type sortResult struct {
	vs         []string
	barycenter layout.OptFloat
	weight     layout.OptFloat
}

// sortEntries orders the sortable entries by barycenter while entries
// without one are re-inserted at their original positions. biasRight flips
// the tie-break between equal barycenters so alternating sweeps do not
// always favor the left.
func sortEntries(entries []sortEntry, biasRight bool) sortResult {
	var sortable, unsortable []sortEntry
	for _, entry := range entries {
		if entry.barycenter.Present() {
			sortable = append(sortable, entry)
		} else {
			unsortable = append(unsortable, entry)
		}
	}

	slices.SortFunc(unsortable, func(a, b sortEntry) int {
		return cmp.Compare(b.i, a.i)
	})
	slices.SortFunc(sortable, func(a, b sortEntry) int {
		if c := cmp.Compare(a.barycenter.Or(0), b.barycenter.Or(0)); c != 0 {
			return c
		}
		if biasRight {
			return cmp.Compare(b.i, a.i)
		}
		return cmp.Compare(a.i, b.i)
	})

	var parts [][]string
	var sum, weight float64
	consumeUnsortable := func(index int) int {
		for len(unsortable) > 0 {
			last := unsortable[len(unsortable)-1]
			if last.i > index {
				break
			}
			unsortable = unsortable[:len(unsortable)-1]
			parts = append(parts, last.vs)
			index++
		}
		return index
	}

	vsIndex := consumeUnsortable(0)
	for _, entry := range sortable {
		vsIndex += len(entry.vs)
		parts = append(parts, entry.vs)
		if b, ok := entry.barycenter.Get(); ok {
			sum += b * entry.weight.Or(0)
			weight += entry.weight.Or(0)
		}
		vsIndex = consumeUnsortable(vsIndex)
	}

	var vs []string
	for _, part := range parts {
		vs = append(vs, part...)
	}
	result := sortResult{vs: vs}
	if weight != 0 {
		result.barycenter = layout.Float(sum / weight)
		result.weight = layout.Float(weight)
	}
	return result
}

// sortSubgraph orders the children of v. Cluster children are sorted
// recursively and re-enter their parent's sort as single weighted entries;
// the cluster's own border nodes bracket the final list and contribute
// their predecessors' positions to the reported barycenter.
func sortSubgraph(lg *layerGraph, v string, cg *conflictGraph, biasRight bool) sortResult {
	movable := lg.Children(v)
	node, _ := lg.Node(v)
	var borderLeft, borderRight string
	if node != nil {
		borderLeft = node.BorderLeftAt(0)
		borderRight = node.BorderRightAt(0)
	}
	if borderLeft != "" && borderRight != "" {
		movable = slices.DeleteFunc(movable, func(w string) bool {
			return w == borderLeft || w == borderRight
		})
	}

	entries := barycenters(lg, movable)
	subgraphs := make(map[string]sortResult)
	for idx := range entries {
		entry := &entries[idx]
		if !lg.HasChildren(entry.v) {
			continue
		}
		sub := sortSubgraph(lg, entry.v, cg, biasRight)
		if sub.barycenter.Present() {
			mergeBarycenters(entry, sub)
		}
		subgraphs[entry.v] = sub
	}

	resolved := resolveConflicts(entries, cg)
	expandSubgraphs(resolved, subgraphs)

	result := sortEntries(resolved, biasRight)

	if borderLeft != "" && borderRight != "" {
		result.vs = append(append([]string{borderLeft}, result.vs...), borderRight)

		if preds := lg.Predecessors(borderLeft); len(preds) > 0 {
			blPred, _ := lg.Node(preds[0])
			brPred, _ := lg.Node(lg.Predecessors(borderRight)[0])
			blOrder := float64(blPred.Order.Or(0))
			brOrder := float64(brPred.Order.Or(0))

			bc := result.barycenter.Or(0)
			w := result.weight.Or(0)
			result.barycenter = layout.Float((bc*w + blOrder + brOrder) / (w + 2))
			result.weight = layout.Float(w + 2)
		}
	}

	return result
}

func expandSubgraphs(entries []sortEntry, subgraphs map[string]sortResult) {
	for idx := range entries {
		entry := &entries[idx]
		var out []string
		for _, v := range entry.vs {
			if sub, ok := subgraphs[v]; ok {
				out = append(out, sub.vs...)
			} else {
				out = append(out, v)
			}
		}
		entry.vs = out
	}
}

func mergeBarycenters(target *barycenterEntry, other sortResult) {
	otherBC, ok := other.barycenter.Get()
	if !ok {
		return
	}
	otherW := other.weight.Or(0)

	if bc, ok := target.barycenter.Get(); ok {
		w := target.weight.Or(0)
		target.barycenter = layout.Float((bc*w + otherBC*otherW) / (w + otherW))
		target.weight = layout.Float(w + otherW)
	} else {
		target.barycenter = layout.Float(otherBC)
		target.weight = layout.Float(otherW)
	}
}
