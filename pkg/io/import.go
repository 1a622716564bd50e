package io

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/laminagraph/lamina/pkg/errors"
	"github.com/laminagraph/lamina/pkg/graph"
	"github.com/laminagraph/lamina/pkg/layout"
)

// ReadJSON decodes a JSON graph from r into a layout graph.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A node has an empty, duplicate, or otherwise invalid id
//   - An edge or parent references an unknown node id
//   - An option string (rankdir, ranker, acyclicer, labelpos) is unknown
//
// Errors are structured (pkg/errors) and name the offending node or edge.
// The returned graph is independent of r and can be modified freely.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*layout.Graph, error) {
	var data graphDoc
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode graph")
	}

	g := layout.NewGraph(graph.Options{
		Directed:   true,
		Multigraph: data.Options.Multigraph,
		Compound:   data.Options.Compound,
	})
	if err := applyGraphLabel(g.Label(), data.Graph); err != nil {
		return nil, err
	}

	for _, n := range data.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		if g.HasNode(n.ID) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		lbl := &layout.NodeLabel{
			Width:  n.Width,
			Height: n.Height,
		}
		if n.X != nil {
			lbl.X = layout.Float(*n.X)
		}
		if n.Y != nil {
			lbl.Y = layout.Float(*n.Y)
		}
		if n.Rank != nil {
			lbl.Rank = layout.Int(*n.Rank)
		}
		if n.Order != nil {
			lbl.Order = layout.Int(*n.Order)
		}
		g.SetNode(n.ID, lbl)
	}

	// Parents are linked after all nodes exist so declaration order in the
	// document does not matter.
	for _, n := range data.Nodes {
		if n.Parent == "" {
			continue
		}
		if !data.Options.Compound {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"node %q has a parent but the graph is not compound", n.ID)
		}
		if !g.HasNode(n.Parent) {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"node %q references unknown parent %q", n.ID, n.Parent)
		}
		g.SetParent(n.ID, n.Parent)
	}

	for _, e := range data.Edges {
		if !g.HasNode(e.V) || !g.HasNode(e.W) {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"edge %s->%s references an unknown node", e.V, e.W)
		}
		if e.Name != "" && !data.Options.Multigraph {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"edge %s->%s has a name but the graph is not a multigraph", e.V, e.W)
		}
		if err := errors.ValidateLabelPos(e.LabelPos); err != nil {
			return nil, err
		}

		lbl := layout.NewEdgeLabel()
		if e.Weight != nil {
			lbl.Weight = *e.Weight
		}
		if e.MinLen != nil {
			lbl.MinLen = *e.MinLen
		}
		lbl.Width = e.Width
		lbl.Height = e.Height
		if e.LabelPos != "" {
			lbl.LabelPos = layout.LabelPos(strings.ToLower(e.LabelPos))
		}
		lbl.LabelOffset = defaultLabelOffset
		if e.LabelOffset != nil {
			lbl.LabelOffset = *e.LabelOffset
		}
		if e.X != nil {
			lbl.X = layout.Float(*e.X)
		}
		if e.Y != nil {
			lbl.Y = layout.Float(*e.Y)
		}
		if len(e.Points) > 0 {
			lbl.Points = append([]layout.Point(nil), e.Points...)
		}
		g.SetNamedEdge(e.V, e.W, e.Name, lbl)
	}

	return g, nil
}

// applyGraphLabel overlays the document's graph settings on the defaults.
func applyGraphLabel(lbl *layout.GraphLabel, doc graphLabelDoc) error {
	if err := errors.ValidateRankDir(doc.RankDir); err != nil {
		return err
	}
	if err := errors.ValidateRanker(doc.Ranker); err != nil {
		return err
	}
	if err := errors.ValidateAcyclicer(doc.Acyclicer); err != nil {
		return err
	}

	if doc.RankDir != "" {
		lbl.RankDir = layout.RankDir(strings.ToLower(doc.RankDir))
	}
	if doc.NodeSep != nil {
		lbl.NodeSep = *doc.NodeSep
	}
	if doc.RankSep != nil {
		lbl.RankSep = *doc.RankSep
	}
	if doc.EdgeSep != nil {
		lbl.EdgeSep = *doc.EdgeSep
	}
	if doc.MarginX != nil {
		lbl.MarginX = *doc.MarginX
	}
	if doc.MarginY != nil {
		lbl.MarginY = *doc.MarginY
	}
	if doc.Ranker != "" {
		lbl.Ranker = doc.Ranker
	}
	if doc.Acyclicer != "" {
		lbl.Acyclicer = doc.Acyclicer
	}
	lbl.DisableOptimalOrderHeuristic = doc.DisableOptimalOrderHeuristic
	return nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*layout.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
