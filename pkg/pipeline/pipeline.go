// Package pipeline provides the core layout pipeline for Lamina.
//
// This package implements the complete decode → layout → render pipeline
// that can be used by CLI and library consumers. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read a graph document from JSON
//  2. Layout: Compute ranks, orders and coordinates for the graph
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    RankDir: "lr",
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, input, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Lay out an in-memory graph directly:
//
//	pipeline.Layout(g)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/laminagraph/lamina/pkg/cache"
	"github.com/laminagraph/lamina/pkg/errors"
	"github.com/laminagraph/lamina/pkg/layout"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options contains all configuration for the layout pipeline. Every layout
// field overrides the corresponding value carried by the input document;
// zero values leave the document's value alone. This struct supports JSON
// serialization so saved runs can be replayed.
type Options struct {
	// Layout options
	RankDir   string   `json:"rankdir,omitempty"`
	NodeSep   *float64 `json:"nodesep,omitempty"`
	RankSep   *float64 `json:"ranksep,omitempty"`
	EdgeSep   *float64 `json:"edgesep,omitempty"`
	MarginX   *float64 `json:"marginx,omitempty"`
	MarginY   *float64 `json:"marginy,omitempty"`
	Ranker    string   `json:"ranker,omitempty"`
	Acyclicer string   `json:"acyclicer,omitempty"`

	// KeepOrder skips the crossing-minimization sweeps and keeps the
	// initial depth-first order within each rank.
	KeepOrder bool `json:"keep_order,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache and recomputes the layout.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the laid out graph.
	Graph *layout.Graph

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the layout override fields.
func (o *Options) ValidateForLayout() error {
	if err := errors.ValidateRankDir(o.RankDir); err != nil {
		return err
	}
	if err := errors.ValidateRanker(o.Ranker); err != nil {
		return err
	}
	if err := errors.ValidateAcyclicer(o.Acyclicer); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ApplyTo overlays the non-zero layout overrides onto the graph's label.
func (o *Options) ApplyTo(g *layout.Graph) {
	lbl := g.Label()
	if o.RankDir != "" {
		lbl.RankDir = layout.RankDir(strings.ToLower(o.RankDir))
	}
	if o.NodeSep != nil {
		lbl.NodeSep = *o.NodeSep
	}
	if o.RankSep != nil {
		lbl.RankSep = *o.RankSep
	}
	if o.EdgeSep != nil {
		lbl.EdgeSep = *o.EdgeSep
	}
	if o.MarginX != nil {
		lbl.MarginX = *o.MarginX
	}
	if o.MarginY != nil {
		lbl.MarginY = *o.MarginY
	}
	if o.Ranker != "" {
		lbl.Ranker = strings.ToLower(o.Ranker)
	}
	if o.Acyclicer != "" {
		lbl.Acyclicer = strings.ToLower(o.Acyclicer)
	}
	if o.KeepOrder {
		lbl.DisableOptimalOrderHeuristic = true
	}
}

// LayoutKeyOpts returns cache key options for layout computation, derived
// from the effective graph label after overrides were applied.
func LayoutKeyOpts(lbl *layout.GraphLabel) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		RankDir:   string(lbl.RankDir),
		NodeSep:   lbl.NodeSep,
		RankSep:   lbl.RankSep,
		EdgeSep:   lbl.EdgeSep,
		MarginX:   lbl.MarginX,
		MarginY:   lbl.MarginY,
		Ranker:    lbl.Ranker,
		Acyclicer: lbl.Acyclicer,
		KeepOrder: lbl.DisableOptimalOrderHeuristic,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
