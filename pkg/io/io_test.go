package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laminagraph/lamina/pkg/errors"
	"github.com/laminagraph/lamina/pkg/layout"
)

func TestReadJSON(t *testing.T) {
	input := `{
		"options": {"multigraph": true, "compound": true},
		"graph": {"rankdir": "lr", "nodesep": 30, "ranker": "tight-tree"},
		"nodes": [
			{"id": "a", "width": 80, "height": 40},
			{"id": "b", "width": 60, "height": 40, "parent": "sg"},
			{"id": "sg"}
		],
		"edges": [
			{"v": "a", "w": "b", "weight": 2, "minlen": 3, "name": "e1"}
		]
	}`

	g, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if !g.IsMultigraph() || !g.IsCompound() {
		t.Error("graph options not applied")
	}
	lbl := g.Label()
	if lbl.RankDir != layout.RankDirLR {
		t.Errorf("rankdir = %q, want lr", lbl.RankDir)
	}
	if lbl.NodeSep != 30 {
		t.Errorf("nodesep = %v, want 30", lbl.NodeSep)
	}
	if lbl.RankSep != 50 {
		t.Errorf("ranksep = %v, want default 50", lbl.RankSep)
	}
	if lbl.Ranker != "tight-tree" {
		t.Errorf("ranker = %q, want tight-tree", lbl.Ranker)
	}

	a, ok := g.Node("a")
	if !ok || a.Width != 80 || a.Height != 40 {
		t.Errorf("node a = %+v, want 80x40", a)
	}
	if g.Parent("b") != "sg" {
		t.Errorf("parent of b = %q, want sg", g.Parent("b"))
	}

	edge, ok := g.Edge("a", "b", "e1")
	if !ok {
		t.Fatal("edge a->b (e1) missing")
	}
	if edge.Weight != 2 || edge.MinLen != 3 {
		t.Errorf("edge weight/minlen = %v/%v, want 2/3", edge.Weight, edge.MinLen)
	}
}

func TestReadJSONDefaults(t *testing.T) {
	input := `{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"edges": [{"v": "a", "w": "b"}]
	}`

	g, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	edge, _ := g.Edge("a", "b", "")
	if edge.Weight != 1 || edge.MinLen != 1 {
		t.Errorf("edge defaults = weight %v minlen %v, want 1/1", edge.Weight, edge.MinLen)
	}
	if edge.LabelPos != layout.LabelPosCenter {
		t.Errorf("labelpos = %q, want c", edge.LabelPos)
	}
	if edge.LabelOffset != defaultLabelOffset {
		t.Errorf("labeloffset = %v, want %v", edge.LabelOffset, defaultLabelOffset)
	}
}

func TestReadJSONRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{
			name:  "malformed json",
			input: `{"nodes": [`,
			code:  errors.ErrCodeDecodeFailed,
		},
		{
			name:  "duplicate node",
			input: `{"nodes": [{"id": "a"}, {"id": "a"}]}`,
			code:  errors.ErrCodeInvalidGraph,
		},
		{
			name:  "unknown edge endpoint",
			input: `{"nodes": [{"id": "a"}], "edges": [{"v": "a", "w": "ghost"}]}`,
			code:  errors.ErrCodeInvalidGraph,
		},
		{
			name:  "unknown parent",
			input: `{"options": {"compound": true}, "nodes": [{"id": "a", "parent": "ghost"}]}`,
			code:  errors.ErrCodeInvalidGraph,
		},
		{
			name:  "parent without compound",
			input: `{"nodes": [{"id": "a"}, {"id": "p"}, {"id": "c", "parent": "p"}]}`,
			code:  errors.ErrCodeInvalidGraph,
		},
		{
			name:  "named edge without multigraph",
			input: `{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"v": "a", "w": "b", "name": "x"}]}`,
			code:  errors.ErrCodeInvalidGraph,
		},
		{
			name:  "bad rankdir",
			input: `{"graph": {"rankdir": "sideways"}, "nodes": []}`,
			code:  errors.ErrCodeInvalidOptions,
		},
		{
			name:  "bad ranker",
			input: `{"graph": {"ranker": "magic"}, "nodes": []}`,
			code:  errors.ErrCodeInvalidOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	input := `{
		"options": {"multigraph": true, "compound": true},
		"graph": {"rankdir": "bt", "nodesep": 25, "ranksep": 40},
		"nodes": [
			{"id": "a", "width": 10, "height": 10},
			{"id": "b", "width": 20, "height": 20, "parent": "sg"},
			{"id": "sg"}
		],
		"edges": [
			{"v": "a", "w": "b", "weight": 3, "minlen": 2, "width": 5, "height": 5, "labelpos": "l"}
		]
	}`

	g, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(g, &buf))

	g2, err := ReadJSON(&buf)
	require.NoError(t, err)

	require.Equal(t, g.NodeCount(), g2.NodeCount())
	require.Equal(t, g.EdgeCount(), g2.EdgeCount())
	require.Equal(t, "sg", g2.Parent("b"))

	e1, _ := g.Edge("a", "b", "")
	e2, ok := g2.Edge("a", "b", "")
	require.True(t, ok, "round trip lost edge")
	require.Equal(t, e1.Weight, e2.Weight)
	require.Equal(t, e1.MinLen, e2.MinLen)
	require.Equal(t, e1.LabelPos, e2.LabelPos)

	require.Equal(t, layout.RankDirBT, g2.Label().RankDir)
	require.Equal(t, 25.0, g2.Label().NodeSep)
}
