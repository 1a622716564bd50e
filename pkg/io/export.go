package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/laminagraph/lamina/pkg/errors"
	"github.com/laminagraph/lamina/pkg/layout"
)

// defaultLabelOffset is the distance between an edge and its label when the
// document does not specify one.
const defaultLabelOffset = 10.0

type graphDoc struct {
	Options optionsDoc    `json:"options"`
	Graph   graphLabelDoc `json:"graph"`
	Nodes   []nodeDoc     `json:"nodes"`
	Edges   []edgeDoc     `json:"edges"`
}

type optionsDoc struct {
	Multigraph bool `json:"multigraph,omitempty"`
	Compound   bool `json:"compound,omitempty"`
}

type graphLabelDoc struct {
	RankDir                      string   `json:"rankdir,omitempty"`
	NodeSep                      *float64 `json:"nodesep,omitempty"`
	RankSep                      *float64 `json:"ranksep,omitempty"`
	EdgeSep                      *float64 `json:"edgesep,omitempty"`
	MarginX                      *float64 `json:"marginx,omitempty"`
	MarginY                      *float64 `json:"marginy,omitempty"`
	Ranker                       string   `json:"ranker,omitempty"`
	Acyclicer                    string   `json:"acyclicer,omitempty"`
	DisableOptimalOrderHeuristic bool     `json:"disable_optimal_order_heuristic,omitempty"`
}

type nodeDoc struct {
	ID     string   `json:"id"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	Parent string   `json:"parent,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Rank   *int     `json:"rank,omitempty"`
	Order  *int     `json:"order,omitempty"`
}

type edgeDoc struct {
	V           string         `json:"v"`
	W           string         `json:"w"`
	Name        string         `json:"name,omitempty"`
	Weight      *float64       `json:"weight,omitempty"`
	MinLen      *int           `json:"minlen,omitempty"`
	Width       float64        `json:"width,omitempty"`
	Height      float64        `json:"height,omitempty"`
	LabelPos    string         `json:"labelpos,omitempty"`
	LabelOffset *float64       `json:"labeloffset,omitempty"`
	X           *float64       `json:"x,omitempty"`
	Y           *float64       `json:"y,omitempty"`
	Points      []layout.Point `json:"points,omitempty"`
}

// WriteJSON encodes a layout graph as JSON and writes it to w.
// The output includes all nodes and edges together with whatever layout
// results (ranks, orders, coordinates, edge points) are present, and can be
// re-imported with [ReadJSON].
func WriteJSON(g *layout.Graph, w io.Writer) error {
	opts := g.Options()
	out := graphDoc{
		Options: optionsDoc{
			Multigraph: opts.Multigraph,
			Compound:   opts.Compound,
		},
		Graph: marshalGraphLabel(g.Label()),
	}

	for _, id := range g.NodeIDs() {
		node, _ := g.Node(id)
		doc := nodeDoc{
			ID:     id,
			Width:  node.Width,
			Height: node.Height,
			Parent: g.Parent(id),
		}
		if x, ok := node.X.Get(); ok {
			doc.X = &x
		}
		if y, ok := node.Y.Get(); ok {
			doc.Y = &y
		}
		if rank, ok := node.Rank.Get(); ok {
			doc.Rank = &rank
		}
		if order, ok := node.Order.Get(); ok {
			doc.Order = &order
		}
		out.Nodes = append(out.Nodes, doc)
	}

	for _, ek := range g.EdgeKeys() {
		lbl, _ := g.EdgeLabel(ek)
		weight := lbl.Weight
		minlen := lbl.MinLen
		doc := edgeDoc{
			V:      ek.V,
			W:      ek.W,
			Name:   ek.Name,
			Weight: &weight,
			MinLen: &minlen,
			Width:  lbl.Width,
			Height: lbl.Height,
			Points: lbl.Points,
		}
		if lbl.LabelPos != layout.LabelPosCenter {
			doc.LabelPos = string(lbl.LabelPos)
		}
		if lbl.LabelOffset != defaultLabelOffset {
			offset := lbl.LabelOffset
			doc.LabelOffset = &offset
		}
		if x, ok := lbl.X.Get(); ok {
			doc.X = &x
		}
		if y, ok := lbl.Y.Get(); ok {
			doc.Y = &y
		}
		out.Edges = append(out.Edges, doc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode graph")
	}
	return nil
}

func marshalGraphLabel(lbl *layout.GraphLabel) graphLabelDoc {
	nodesep := lbl.NodeSep
	ranksep := lbl.RankSep
	edgesep := lbl.EdgeSep
	doc := graphLabelDoc{
		RankDir:                      string(lbl.RankDir),
		NodeSep:                      &nodesep,
		RankSep:                      &ranksep,
		EdgeSep:                      &edgesep,
		Ranker:                       lbl.Ranker,
		Acyclicer:                    lbl.Acyclicer,
		DisableOptimalOrderHeuristic: lbl.DisableOptimalOrderHeuristic,
	}
	if lbl.MarginX != 0 {
		marginx := lbl.MarginX
		doc.MarginX = &marginx
	}
	if lbl.MarginY != 0 {
		marginy := lbl.MarginY
		doc.MarginY = &marginy
	}
	return doc
}

// ExportJSON writes a layout graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *layout.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
