package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/laminagraph/lamina/pkg/layout"
)

// ToDOT converts a laid out graph to Graphviz DOT format. Computed node
// centers become pinned pos attributes (points), node sizes become width and
// height (inches), edge routes become edge pos strings and edge label
// centers become lp attributes. The resulting DOT string can be rendered
// with [SVG] or [PNG].
//
// Clusters are emitted as DOT subgraphs so compound structure survives the
// export.
func ToDOT(g *layout.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dotRankDir(g.Label().RankDir))
	buf.WriteString("  node [shape=box];\n")
	buf.WriteString("\n")

	if g.Options().Compound {
		writeCluster(&buf, g, "", 1)
	} else {
		for _, id := range g.NodeIDs() {
			writeNode(&buf, g, id, 1)
		}
	}

	buf.WriteString("\n")
	for _, ek := range g.EdgeKeys() {
		edge, _ := g.EdgeLabel(ek)
		attrs := edgeAttrs(edge)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", ek.V, ek.W)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", ek.V, ek.W, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, g *layout.Graph, parent string, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, id := range g.Children(parent) {
		if !g.HasChildren(id) {
			writeNode(buf, g, id, depth)
			continue
		}
		fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+id)
		fmt.Fprintf(buf, "%s  label=%q;\n", indent, id)
		writeCluster(buf, g, id, depth+1)
		fmt.Fprintf(buf, "%s}\n", indent)
	}
}

func writeNode(buf *bytes.Buffer, g *layout.Graph, id string, depth int) {
	node, _ := g.Node(id)
	attrs := []string{fmt.Sprintf("label=%q", id)}
	x, okX := node.X.Get()
	y, okY := node.Y.Get()
	if okX && okY {
		attrs = append(attrs, fmt.Sprintf("pos=%q", fmtPoint(x, y)+"!"))
	}
	if node.Width > 0 {
		attrs = append(attrs, fmt.Sprintf("width=%s", fmtFloat(node.Width/72)))
	}
	if node.Height > 0 {
		attrs = append(attrs, fmt.Sprintf("height=%s", fmtFloat(node.Height/72)))
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", strings.Repeat("  ", depth), id, strings.Join(attrs, ", "))
}

func edgeAttrs(edge *layout.EdgeLabel) []string {
	var attrs []string
	if len(edge.Points) > 0 {
		parts := make([]string, len(edge.Points))
		for i, p := range edge.Points {
			parts[i] = fmtPoint(p.X, p.Y)
		}
		attrs = append(attrs, fmt.Sprintf("pos=%q", strings.Join(parts, " ")))
	}
	x, okX := edge.X.Get()
	y, okY := edge.Y.Get()
	if okX && okY {
		attrs = append(attrs, fmt.Sprintf("lp=%q", fmtPoint(x, y)))
	}
	if edge.Weight != 0 && edge.Weight != 1 {
		attrs = append(attrs, fmt.Sprintf("weight=%s", fmtFloat(edge.Weight)))
	}
	return attrs
}

func dotRankDir(dir layout.RankDir) string {
	switch dir {
	case layout.RankDirBT:
		return "BT"
	case layout.RankDirLR:
		return "LR"
	case layout.RankDirRL:
		return "RL"
	default:
		return "TB"
	}
}

func fmtPoint(x, y float64) string {
	return fmtFloat(x) + "," + fmtFloat(y)
}

func fmtFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
